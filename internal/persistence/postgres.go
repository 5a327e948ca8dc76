package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/db"
)

// UserDocumentsRepo is the part of db.DB the Postgres store needs.
type UserDocumentsRepo interface {
	GetUserDocuments(ctx context.Context, userID string) (*db.UserDocuments, error)
	SaveUserDocuments(ctx context.Context, doc *db.UserDocuments) error
}

// PostgresStore keeps the record in the user_documents table, one row per
// installation.
type PostgresStore struct {
	repo   UserDocumentsRepo
	userID string
}

// NewPostgresStore creates a store for one installation id.
func NewPostgresStore(repo UserDocumentsRepo, userID string) *PostgresStore {
	return &PostgresStore{repo: repo, userID: userID}
}

// record mirrors the persisted documents shape without decoding the parts.
type record struct {
	ResumeData      json.RawMessage `json:"resumeData"`
	CoverLetterData json.RawMessage `json:"coverLetterData"`
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	row, err := s.repo.GetUserDocuments(ctx, s.userID)
	if err != nil || row == nil {
		return nil, err
	}
	data, err := json.Marshal(record{ResumeData: row.ResumeData, CoverLetterData: row.CoverLetterData})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble record: %w", err)
	}
	return data, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to split record: %w", err)
	}
	return s.repo.SaveUserDocuments(ctx, &db.UserDocuments{
		UserID:          s.userID,
		ResumeData:      rec.ResumeData,
		CoverLetterData: rec.CoverLetterData,
	})
}
