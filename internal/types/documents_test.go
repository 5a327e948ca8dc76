package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_JSONFieldNames(t *testing.T) {
	docs := SampleDocuments(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))

	jsonBytes, err := json.Marshal(docs)
	require.NoError(t, err)

	out := string(jsonBytes)
	assert.Contains(t, out, `"resumeData":`)
	assert.Contains(t, out, `"coverLetterData":`)
	assert.Contains(t, out, `"personalInfo":`)
	assert.Contains(t, out, `"professionalSummary":`)
	assert.Contains(t, out, `"technicalSkills":`)
	assert.Contains(t, out, `"hiringManager":"Hiring Manager"`)
	assert.Contains(t, out, `"date":"March 4, 2026"`)
}

func TestDocuments_ProjectURLOmittedWhenBlank(t *testing.T) {
	jsonBytes, err := json.Marshal(Project{Name: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), `"url"`)
}

func TestDocuments_CloneIsDeep(t *testing.T) {
	docs := SampleDocuments(time.Now())
	clone := docs.Clone()

	clone.Resume.Experience[0].Achievements[0] = "changed"
	clone.Resume.Projects[0].Description[0] = "changed"
	clone.Resume.Education[0].Degree = "changed"
	clone.Resume.Experience = append(clone.Resume.Experience, Experience{})

	assert.NotEqual(t, "changed", docs.Resume.Experience[0].Achievements[0])
	assert.NotEqual(t, "changed", docs.Resume.Projects[0].Description[0])
	assert.NotEqual(t, "changed", docs.Resume.Education[0].Degree)
	assert.Len(t, docs.Resume.Experience, 2)
}

func TestDocuments_ClonePreservesNilAndEmpty(t *testing.T) {
	docs := Documents{Resume: ResumeDocument{Experience: []Experience{}}}
	clone := docs.Clone()

	assert.NotNil(t, clone.Resume.Experience)
	assert.Empty(t, clone.Resume.Experience)
	assert.Nil(t, clone.Resume.Projects)
	assert.Equal(t, docs, clone)
}

func TestDocuments_SyncPersonalInfo(t *testing.T) {
	docs := SampleDocuments(time.Now())
	docs.Resume.PersonalInfo.Name = "Ada Lovelace"

	docs.SyncPersonalInfo()

	assert.Equal(t, "Ada Lovelace", docs.CoverLetter.PersonalInfo.Name)
	assert.Equal(t, docs.Resume.PersonalInfo, docs.CoverLetter.PersonalInfo)
}

func TestTechnicalSkills_CategoriesOrder(t *testing.T) {
	skills := TechnicalSkills{Languages: "Go", Certifications: "CKA"}
	cats := skills.Categories()

	require.Len(t, cats, 5)
	assert.Equal(t, "Languages", cats[0].Label)
	assert.Equal(t, "Go", cats[0].Value)
	assert.Equal(t, "Frameworks & Libraries", cats[1].Label)
	assert.Equal(t, "Tools & Platforms", cats[2].Label)
	assert.Equal(t, "Methodologies", cats[3].Label)
	assert.Equal(t, "Certifications", cats[4].Label)
	assert.Equal(t, "CKA", cats[4].Value)
}

func TestParseDocumentKind(t *testing.T) {
	tests := []struct {
		in      string
		want    DocumentKind
		wantErr bool
	}{
		{"resume", KindResume, false},
		{"cover_letter", KindCoverLetter, false},
		{"cover-letter", KindCoverLetter, false},
		{"letter", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDocumentKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentKind_Label(t *testing.T) {
	assert.Equal(t, "Resume", KindResume.Label())
	assert.Equal(t, "Cover Letter", KindCoverLetter.Label())
}
