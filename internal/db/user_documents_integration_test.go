//go:build integration
// +build integration

package db

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestUserDocuments_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := uuid.New().String()
	defer func() { _ = db.DeleteUserDocuments(ctx, userID) }()

	got, err := db.GetUserDocuments(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	doc := &UserDocuments{
		UserID:          userID,
		ResumeData:      json.RawMessage(`{"personalInfo": {"name": "First"}}`),
		CoverLetterData: json.RawMessage(`{"personalInfo": {}}`),
	}
	require.NoError(t, db.SaveUserDocuments(ctx, doc))

	doc.ResumeData = json.RawMessage(`{"personalInfo": {"name": "Second"}}`)
	require.NoError(t, db.SaveUserDocuments(ctx, doc))

	got, err = db.GetUserDocuments(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"personalInfo": {"name": "Second"}}`, string(got.ResumeData))
	assert.False(t, got.UpdatedAt.IsZero())
}
