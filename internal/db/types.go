package db

import (
	"encoding/json"
	"time"
)

// UserDocuments is one installation's saved résumé and cover letter.
type UserDocuments struct {
	UserID          string          `json:"user_id"`
	ResumeData      json.RawMessage `json:"resume_data"`
	CoverLetterData json.RawMessage `json:"cover_letter_data"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
