package types

import "fmt"

// Documents is the combined application state and the shape of the persisted
// record.
type Documents struct {
	Resume      ResumeDocument      `json:"resumeData"`
	CoverLetter CoverLetterDocument `json:"coverLetterData"`
}

// Clone returns a deep copy so a committed snapshot never aliases a buffer.
func (d Documents) Clone() Documents {
	return Documents{
		Resume:      d.Resume.Clone(),
		CoverLetter: d.CoverLetter,
	}
}

// SyncPersonalInfo copies the résumé's personal info onto the cover letter.
// The résumé is the source of truth.
func (d *Documents) SyncPersonalInfo() {
	d.CoverLetter.PersonalInfo = d.Resume.PersonalInfo
}

// DocumentKind identifies which of the two documents an operation targets.
type DocumentKind string

const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Label is the human form used in titles and file names.
func (k DocumentKind) Label() string {
	if k == KindCoverLetter {
		return "Cover Letter"
	}
	return "Resume"
}

// ParseDocumentKind accepts "resume", "cover_letter" and "cover-letter".
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch s {
	case "resume":
		return KindResume, nil
	case "cover_letter", "cover-letter", "coverletter":
		return KindCoverLetter, nil
	}
	return "", fmt.Errorf("unknown document %q", s)
}
