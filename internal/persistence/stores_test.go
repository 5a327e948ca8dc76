package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "editor.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	record, err := Encode(sample())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, record))
	require.NoError(t, store.Save(ctx, record))

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(record), string(data))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_WithAdapter(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "editor.db"))
	require.NoError(t, err)
	defer store.Close()

	a, _ := newTestAdapter(store)
	docs := sample()
	a.Save(docs)
	require.NoError(t, a.Flush(context.Background()))

	loaded, ok := a.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, docs, *loaded)
}

func TestInstallationID(t *testing.T) {
	local := NewMemoryStore()
	ctx := context.Background()

	id, err := InstallationID(ctx, local)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := InstallationID(ctx, local)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	cached, ok, _ := local.Get(ctx, InstallationIDKey)
	assert.True(t, ok)
	assert.Equal(t, id, cached)
}

func TestInstallationID_ReplacesGarbage(t *testing.T) {
	local := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, local.Set(ctx, InstallationIDKey, "not-a-uuid"))

	id, err := InstallationID(ctx, local)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", id)
}

type fakeRepo struct {
	rows map[string]*db.UserDocuments
}

func (f *fakeRepo) GetUserDocuments(ctx context.Context, userID string) (*db.UserDocuments, error) {
	return f.rows[userID], nil
}

func (f *fakeRepo) SaveUserDocuments(ctx context.Context, doc *db.UserDocuments) error {
	cp := *doc
	cp.UpdatedAt = time.Now()
	f.rows[doc.UserID] = &cp
	return nil
}

func TestPostgresStore_SplitsRecord(t *testing.T) {
	repo := &fakeRepo{rows: map[string]*db.UserDocuments{}}
	store := NewPostgresStore(repo, "user-1")
	ctx := context.Background()

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	record, err := Encode(sample())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, record))

	row := repo.rows["user-1"]
	require.NotNil(t, row)
	var resume map[string]any
	require.NoError(t, json.Unmarshal(row.ResumeData, &resume))
	assert.Contains(t, resume, "personalInfo")

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(record), string(data))

	docs, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sample(), *docs)
}

func TestPostgresStore_RejectsNonJSON(t *testing.T) {
	store := NewPostgresStore(&fakeRepo{rows: map[string]*db.UserDocuments{}}, "u")
	assert.Error(t, store.Save(context.Background(), []byte("nope")))
}

func TestRedisStore_Key(t *testing.T) {
	store := NewRedisStore(nil, "abc")
	assert.Equal(t, "resume_editor:documents:abc", store.Key())
}
