package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetUserDocuments returns the saved documents for a user, or nil if there
// are none.
func (db *DB) GetUserDocuments(ctx context.Context, userID string) (*UserDocuments, error) {
	var doc UserDocuments
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, resume_data, cover_letter_data, updated_at
		 FROM user_documents WHERE user_id = $1`,
		userID,
	).Scan(&doc.UserID, &doc.ResumeData, &doc.CoverLetterData, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get documents for %s: %w", userID, err)
	}
	return &doc, nil
}

// SaveUserDocuments inserts or replaces the documents for a user.
func (db *DB) SaveUserDocuments(ctx context.Context, doc *UserDocuments) error {
	if doc == nil || doc.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_documents (user_id, resume_data, cover_letter_data, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET resume_data = $2, cover_letter_data = $3, updated_at = NOW()`,
		doc.UserID, []byte(doc.ResumeData), []byte(doc.CoverLetterData),
	)
	if err != nil {
		return fmt.Errorf("failed to save documents for %s: %w", doc.UserID, err)
	}
	return nil
}

// DeleteUserDocuments removes a user's saved documents.
func (db *DB) DeleteUserDocuments(ctx context.Context, userID string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM user_documents WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete documents for %s: %w", userID, err)
	}
	return nil
}
