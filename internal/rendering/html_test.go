package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func sampleDocs() types.Documents {
	return types.SampleDocuments(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestRenderHTML_SectionsInOrder(t *testing.T) {
	out, err := RenderHTML(sampleDocs(), types.KindResume, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	var titles []string
	doc.Find("h2.section-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{TitleSummary, TitleSkills, TitleExperience, TitleProjects, TitleEducation}, titles)
	assert.Equal(t, "John D. Eveloper, BSc - Resume", doc.Find("title").Text())
	assert.Equal(t, "John D. Eveloper, BSc", doc.Find("h1.name").Text())
}

func TestRenderHTML_EmptyResume(t *testing.T) {
	out, err := RenderHTML(types.Documents{}, types.KindResume, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, 1, doc.Find("h1.name").Length())
	assert.Equal(t, 0, doc.Find("h2").Length())
	assert.Equal(t, "Resume", doc.Find("title").Text())
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	docs := types.Documents{}
	docs.Resume.PersonalInfo.Name = `<script>alert("x")</script>`
	docs.Resume.ProfessionalSummary.Content = "R&D <b>lead</b>"

	out, err := RenderHTML(docs, types.KindResume, Options{})
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>lead</b>")
	doc := parseHTML(t, out)
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h1.name").Text())
	assert.Equal(t, "R&D <b>lead</b>", doc.Find("p.text").First().Text())
}

func TestRenderHTML_PreservesParagraphBreaks(t *testing.T) {
	docs := types.Documents{}
	docs.Resume.ProfessionalSummary.Content = "First paragraph\nstill first\n\nSecond paragraph"

	out, err := RenderHTML(docs, types.KindResume, Options{})
	require.NoError(t, err)

	paras := parseHTML(t, out).Find("section p.text")
	require.Equal(t, 2, paras.Length())
	assert.Equal(t, "First paragraph\nstill first", paras.Eq(0).Text())
	assert.Equal(t, "Second paragraph", paras.Eq(1).Text())
	assert.Contains(t, out, "white-space: pre-line")
}

func TestRenderHTML_ProjectURL(t *testing.T) {
	out, err := RenderHTML(sampleDocs(), types.KindResume, Options{})
	require.NoError(t, err)

	href, ok := parseHTML(t, out).Find(`a[href="https://github.com/johndeveloper/portfoliotracker"]`).Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/johndeveloper/portfoliotracker", href)
}

func TestRenderHTML_PrintRules(t *testing.T) {
	out, err := RenderHTML(sampleDocs(), types.KindResume, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "@media print")
	doc := parseHTML(t, out)
	assert.Equal(t, 5, doc.Find(".skills-grid .skill-label").Length())
	assert.GreaterOrEqual(t, doc.Find(".page-break-inside-avoid").Length(), 4)
}

func TestRenderHTML_GeneratedStamp(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	out, err := RenderHTML(sampleDocs(), types.KindResume, Options{GeneratedAt: at})
	require.NoError(t, err)

	content, _ := parseHTML(t, out).Find(`meta[name="generated"]`).Attr("content")
	assert.Equal(t, "2026-02-03T04:05:06Z", content)
}

func TestRenderHTML_CoverLetter(t *testing.T) {
	out, err := RenderHTML(sampleDocs(), types.KindCoverLetter, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "John D. Eveloper, BSc - Cover Letter", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find(".align-right").Length())
	assert.Contains(t, doc.Text(), "Dear Hiring Manager,")
	assert.Contains(t, doc.Text(), "Re: Senior Software Engineer")
	assert.Equal(t, 0, doc.Find("h2").Length())
	// the body has two paragraphs
	assert.Equal(t, 2, doc.Find("p.text").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), "FinSecure") || strings.Contains(s.Text(), "particularly excites")
	}).Length())
}

func TestRenderHTML_LabelOnFirstParagraphOnly(t *testing.T) {
	docs := types.Documents{}
	docs.Resume.Projects = []types.Project{{
		Name:         "Ledger",
		Technologies: "Go, Postgres\n\nRedis",
	}}

	out, err := RenderHTML(docs, types.KindResume, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	tech := doc.Find("p.text").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(".tech-used").Length() > 0
	})
	require.Equal(t, 2, tech.Length())
	assert.Equal(t, 1, doc.Find("span.label").Length())
	assert.Equal(t, "Technologies: Go, Postgres", tech.Eq(0).Text())
	assert.Equal(t, "Redis", tech.Eq(1).Text())
}
