package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/persistence"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRasterizer returns a fixed payload or error instead of starting a browser.
type stubRasterizer struct {
	err error
}

func (s *stubRasterizer) Rasterize(_ context.Context, pages []rendering.Page, _ rendering.PageGeometry, title string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7 " + title), nil
}

type testServer struct {
	*Server
	hook *test.Hook
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()

	logger, hook := test.NewNullLogger()
	docs := types.SampleDocuments(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	cfg := Config{
		Workspace: editing.NewWorkspace(docs, logger),
		Exporter:  rendering.NewExporter(&stubRasterizer{}, logger),
		RateLimit: &ratelimit.Config{Enabled: false},
		Logger:    logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(s.rateLimiter.Stop)

	return &testServer{Server: s, hook: hook}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Workspace: editing.NewWorkspace(types.Documents{}, nil)})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestGetDocuments(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var docs types.Documents
	decodeJSON(t, rec, &docs)
	assert.Equal(t, "John D. Eveloper, BSc", docs.Resume.PersonalInfo.Name)
	assert.Equal(t, "May 1, 2026", docs.CoverLetter.RecipientInfo.Date)
}

func TestWorkspace_SetTab(t *testing.T) {
	ts := newTestServer(t)
	ts.workspace.SetExportMenuOpen(true)

	rec := ts.do(t, http.MethodPut, "/workspace/tab", `{"tab":"cover_letter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view editing.View
	decodeJSON(t, rec, &view)
	assert.Equal(t, types.KindCoverLetter, view.ActiveTab)
	assert.False(t, view.ExportMenuOpen)
}

func TestWorkspace_SetTabInvalid(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/workspace/tab", `{"tab":"letter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tab")

	rec = ts.do(t, http.MethodPut, "/workspace/tab", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkspace_ExportMenu(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/workspace/export-menu", `{"open":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ts.workspace.ExportMenuOpen())

	rec = ts.do(t, http.MethodPut, "/workspace/export-menu", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSections_EditMergeCommit(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/sections/personal_info/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var section SectionResponse
	decodeJSON(t, rec, &section)
	assert.Equal(t, editing.SectionPersonalInfo, section.Section)
	assert.Equal(t, types.KindResume, section.Document)
	assert.NotNil(t, section.Buffer)

	rec = ts.do(t, http.MethodPatch, "/sections/personal_info/buffer", `{"name":"Ada Lovelace"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// committed value unchanged until commit
	assert.Equal(t, "John D. Eveloper, BSc", ts.workspace.Snapshot().Resume.PersonalInfo.Name)

	rec = ts.do(t, http.MethodPost, "/sections/personal_info/commit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var docs types.Documents
	decodeJSON(t, rec, &docs)
	assert.Equal(t, "Ada Lovelace", docs.Resume.PersonalInfo.Name)
	assert.Equal(t, "Ada Lovelace", docs.CoverLetter.PersonalInfo.Name)
	assert.Equal(t, "john.d.eveloper@email.com", docs.Resume.PersonalInfo.Email)

	_, editingNow := ts.workspace.Controller().Editing()
	assert.False(t, editingNow)
}

func TestSections_GetViewing(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/sections/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	decodeJSON(t, rec, &raw)
	assert.Equal(t, "viewing", raw["state"])
	assert.NotContains(t, raw, "buffer")
}

func TestSections_Discard(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/education/edit", "").Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPatch, "/sections/education/buffer", `[]`).Code)

	rec := ts.do(t, http.MethodPost, "/sections/education/discard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ts.workspace.Snapshot().Resume.Education, 1)
}

func TestSections_Errors(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/sections/hobbies/edit", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/sections/summary/buffer", `{"content":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/sections/summary/commit", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/summary/edit", "").Code)
	rec = ts.do(t, http.MethodPatch, "/sections/summary/buffer", `{"unknown":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSections_ListEntries(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/experience/edit", "").Code)

	rec := ts.do(t, http.MethodPost, "/sections/experience/entries", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Buffer []types.Experience `json:"buffer"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Buffer, 3)
	assert.Equal(t, []string{""}, resp.Buffer[2].Achievements)

	rec = ts.do(t, http.MethodPost, "/sections/experience/entries/2/bullets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &resp)
	assert.Len(t, resp.Buffer[2].Achievements, 2)

	rec = ts.do(t, http.MethodDelete, "/sections/experience/entries/2/bullets/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &resp)
	assert.Len(t, resp.Buffer[2].Achievements, 1)

	rec = ts.do(t, http.MethodDelete, "/sections/experience/entries/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Buffer, 2)
	assert.Equal(t, "Innovate Solutions LLC", resp.Buffer[0].Company)

	// committed documents change only on commit
	assert.Len(t, ts.workspace.Snapshot().Resume.Experience, 2)
	assert.Equal(t, "FinSecure Corp.", ts.workspace.Snapshot().Resume.Experience[0].Company)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/experience/commit", "").Code)
	exp := ts.workspace.Snapshot().Resume.Experience
	require.Len(t, exp, 2)
	assert.Equal(t, "Innovate Solutions LLC", exp[0].Company)
	assert.Empty(t, exp[1].Company)
}

func TestSections_ListEntryErrors(t *testing.T) {
	ts := newTestServer(t)

	// no open buffer
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/sections/projects/entries", "").Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/projects/edit", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/sections/projects/entries/9", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/sections/projects/entries/0/bullets/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodDelete, "/sections/projects/entries/first", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodDelete, "/sections/projects/entries/-1", "").Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/education/edit", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/sections/education/entries/0/bullets", "").Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/summary/edit", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/sections/summary/entries", "").Code)
}

func TestExport_Text(t *testing.T) {
	ts := newTestServer(t)
	ts.workspace.SetExportMenuOpen(true)

	rec := ts.do(t, http.MethodGet, "/export/resume/txt", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=John_D_Eveloper_BSc_Resume.txt`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "JOHN D. EVELOPER, BSC\n"))
	assert.False(t, ts.workspace.ExportMenuOpen())
}

func TestExport_HTML(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/export/cover_letter/html", "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "John D. Eveloper, BSc - Cover Letter", doc.Find("title").Text())
	assert.Contains(t, doc.Text(), "Dear Hiring Manager,")
}

func TestExport_PDF(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/export/resume/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestExport_FailureIsGeneric(t *testing.T) {
	ts := newTestServer(t, func(c *Config) {
		c.Exporter = rendering.NewExporter(&stubRasterizer{err: errors.New("chrome crashed")}, c.Logger)
	})
	ts.workspace.SetExportMenuOpen(true)

	rec := ts.do(t, http.MethodGet, "/export/resume/pdf", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to generate PDF. Please try again."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "chrome")
	assert.False(t, ts.workspace.ExportMenuOpen())
}

func TestExport_InvalidRequest(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/export/resume/rtf", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/export/memo/pdf", "").Code)
}

func TestPrint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/print/resume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "John D. Eveloper, BSc", doc.Find("h1.name").Text())
	assert.Equal(t, 5, doc.Find("h2.section-title").Length())
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Hour}
	})

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/documents", "").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/documents", "").Code)

	rec := ts.do(t, http.MethodGet, "/documents", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodOptions, "/sections/summary/buffer", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRequestLogging(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/workspace", "")

	entry := ts.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, "/workspace", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestCommitSchedulesSave(t *testing.T) {
	store := persistence.NewMemoryStore()
	logger, _ := test.NewNullLogger()
	adapter := persistence.NewAdapter(store, time.Hour, logger)

	ts := newTestServer(t, func(c *Config) { c.Adapter = adapter })
	adapter.Watch(ts.workspace.Controller())

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/summary/edit", "").Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPatch, "/sections/summary/buffer", `{"content":"Short."}`).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/sections/summary/commit", "").Code)

	assert.True(t, adapter.Pending())
	require.NoError(t, adapter.Flush(context.Background()))
	assert.Equal(t, 1, store.Writes())
}

func TestStart_ShutdownFlushes(t *testing.T) {
	store := persistence.NewMemoryStore()
	logger, _ := test.NewNullLogger()
	adapter := persistence.NewAdapter(store, time.Hour, logger)

	ts := newTestServer(t, func(c *Config) { c.Adapter = adapter })
	ts.httpServer.Addr = "127.0.0.1:0"
	adapter.Save(ts.workspace.Snapshot())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ts.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, 1, store.Writes())
	assert.False(t, adapter.Pending())
}
