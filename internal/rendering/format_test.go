package rendering

import (
	"testing"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		kind   types.DocumentKind
		format Format
		want   string
	}{
		{"simple", "Jane Doe", types.KindResume, FormatHTML, "Jane_Doe_Resume.html"},
		{"punctuation", "O'Brien, Really? Inc.", types.KindResume, FormatHTML, "OBrien_Really_Inc_Resume.html"},
		{"whitespace runs", "  Jane \t  Doe  ", types.KindCoverLetter, FormatPDF, "Jane_Doe_Cover_Letter.pdf"},
		{"blank", "   ", types.KindResume, FormatText, "Untitled_Resume.txt"},
		{"only symbols", "!!!", types.KindCoverLetter, FormatWord, "Untitled_Cover_Letter.doc"},
		{"non ascii dropped", "Zoë Ångström", types.KindResume, FormatHTML, "Zo_ngstrm_Resume.html"},
		{"underscores kept", "_a_b_", types.KindResume, FormatHTML, "a_b_Resume.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in, tt.kind, tt.format))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"pdf": FormatPDF, "HTML": FormatHTML, "word": FormatWord, "doc": FormatWord, "text": FormatText, "txt": FormatText,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/msword", FormatWord.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatHTML.ContentType(), "text/html")
	assert.Contains(t, FormatText.ContentType(), "text/plain")
}
