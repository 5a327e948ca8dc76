// Package editing implements buffered, per-section editing of the documents
// and the workspace state that goes with it.
package editing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// SectionID names an editable section.
type SectionID string

const (
	SectionPersonalInfo  SectionID = "personal_info"
	SectionSummary       SectionID = "summary"
	SectionSkills        SectionID = "skills"
	SectionExperience    SectionID = "experience"
	SectionProjects      SectionID = "projects"
	SectionEducation     SectionID = "education"
	SectionRecipient     SectionID = "recipient"
	SectionLetterContent SectionID = "letter_content"
)

// Sections lists every section, résumé first.
var Sections = []SectionID{
	SectionPersonalInfo,
	SectionSummary,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionRecipient,
	SectionLetterContent,
}

// ErrNotEditing is returned when a buffer operation targets a section that
// is not being edited.
var ErrNotEditing = errors.New("section is not being edited")

// UnknownSectionError is returned for a section id that does not exist.
type UnknownSectionError struct {
	ID string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %q", e.ID)
}

// ParseSection validates a section id. Hyphens are accepted for underscores.
func ParseSection(s string) (SectionID, error) {
	id := SectionID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Sections {
		if id == known {
			return id, nil
		}
	}
	return "", &UnknownSectionError{ID: s}
}

// Document is the document the section belongs to.
func (id SectionID) Document() types.DocumentKind {
	switch id {
	case SectionRecipient, SectionLetterContent:
		return types.KindCoverLetter
	default:
		return types.KindResume
	}
}

// isList reports whether the section value is a list. A partial update to a
// list replaces it.
func (id SectionID) isList() bool {
	switch id {
	case SectionExperience, SectionProjects, SectionEducation:
		return true
	default:
		return false
	}
}

// State is the visible state of a section.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// MarshalText renders the state as "viewing" or "editing".
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// sectionValue returns a pointer to the section's value inside docs.
func sectionValue(docs *types.Documents, id SectionID) any {
	switch id {
	case SectionPersonalInfo:
		return &docs.Resume.PersonalInfo
	case SectionSummary:
		return &docs.Resume.ProfessionalSummary
	case SectionSkills:
		return &docs.Resume.TechnicalSkills
	case SectionExperience:
		return &docs.Resume.Experience
	case SectionProjects:
		return &docs.Resume.Projects
	case SectionEducation:
		return &docs.Resume.Education
	case SectionRecipient:
		return &docs.CoverLetter.RecipientInfo
	case SectionLetterContent:
		return &docs.CoverLetter.Content
	default:
		return nil
	}
}

// SectionValue returns a copy of one section's value from docs.
func SectionValue(docs types.Documents, id SectionID) any {
	clone := docs.Clone()
	switch v := sectionValue(&clone, id).(type) {
	case *types.PersonalInfo:
		return *v
	case *types.ProfessionalSummary:
		return *v
	case *types.TechnicalSkills:
		return *v
	case *[]types.Experience:
		return *v
	case *[]types.Project:
		return *v
	case *[]types.Education:
		return *v
	case *types.RecipientInfo:
		return *v
	case *types.LetterContent:
		return *v
	default:
		return nil
	}
}

// copySection copies one section from src into dst. Lists are cloned.
func copySection(dst *types.Documents, src types.Documents, id SectionID) {
	src = src.Clone()
	switch id {
	case SectionPersonalInfo:
		dst.Resume.PersonalInfo = src.Resume.PersonalInfo
	case SectionSummary:
		dst.Resume.ProfessionalSummary = src.Resume.ProfessionalSummary
	case SectionSkills:
		dst.Resume.TechnicalSkills = src.Resume.TechnicalSkills
	case SectionExperience:
		dst.Resume.Experience = src.Resume.Experience
	case SectionProjects:
		dst.Resume.Projects = src.Resume.Projects
	case SectionEducation:
		dst.Resume.Education = src.Resume.Education
	case SectionRecipient:
		dst.CoverLetter.RecipientInfo = src.CoverLetter.RecipientInfo
	case SectionLetterContent:
		dst.CoverLetter.Content = src.CoverLetter.Content
	}
}
