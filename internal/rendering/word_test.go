package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWord_OfficeMarkup(t *testing.T) {
	out, err := RenderWord(sampleDocs(), types.KindResume, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<html xmlns:o="urn:schemas-microsoft-com:office:office"`))
	assert.Contains(t, out, `xmlns:w="urn:schemas-microsoft-com:office:word"`)
	assert.Contains(t, out, "<!--[if gte mso 9]>")
	assert.Contains(t, out, "<w:View>Print</w:View>")
	assert.Contains(t, out, "Times New Roman")
}

func TestRenderWord_LineBreaksBecomeBr(t *testing.T) {
	docs := types.Documents{}
	docs.Resume.ProfessionalSummary.Content = "one\ntwo\n\nthree"

	out, err := RenderWord(docs, types.KindResume, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "<p>one<br>two</p>")
	assert.Contains(t, out, "<p>three</p>")
}

func TestRenderWord_SkillsTableAndTechnologies(t *testing.T) {
	out, err := RenderWord(sampleDocs(), types.KindResume, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, 5, doc.Find("table.skills-table tr").Length())
	assert.Equal(t, "Languages:", doc.Find("td.skill-label").First().Text())
	assert.Equal(t, 3, doc.Find("p.tech-used").Length())
}

func TestRenderWord_Escapes(t *testing.T) {
	docs := types.Documents{}
	docs.CoverLetter.Content.Body = "Tom & Jerry <3"

	out, err := RenderWord(docs, types.KindCoverLetter, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "Tom &amp; Jerry &lt;3")
}

func TestRenderWord_LabelOnFirstParagraphOnly(t *testing.T) {
	docs := types.Documents{}
	docs.Resume.Experience = []types.Experience{{
		Company:      "Acme",
		Technologies: "Go\n\nKafka",
	}}

	out, err := RenderWord(docs, types.KindResume, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	tech := doc.Find("p.tech-used")
	require.Equal(t, 2, tech.Length())
	assert.Equal(t, "Technologies: Go", tech.Eq(0).Text())
	assert.Equal(t, "Kafka", tech.Eq(1).Text())
	assert.Equal(t, 1, strings.Count(out, "Technologies:"))
}
