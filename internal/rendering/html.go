package rendering

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").ParseFS(templateFS, "templates/*.tmpl"))

// Options tweaks an export.
type Options struct {
	// GeneratedAt, when set, is stamped into the document metadata.
	GeneratedAt time.Time
}

func (o Options) generated() string {
	if o.GeneratedAt.IsZero() {
		return ""
	}
	return o.GeneratedAt.UTC().Format(time.RFC3339)
}

// pageData is passed to the embedded page templates.
type pageData struct {
	Title     string
	Generated string
	Preamble  template.HTML
	Body      template.HTML
}

// DocumentTitle is the window/document title, e.g. "Jane Doe - Resume".
func DocumentTitle(docs types.Documents, kind types.DocumentKind) string {
	name := strings.TrimSpace(docs.Resume.PersonalInfo.Name)
	if kind == types.KindCoverLetter {
		name = strings.TrimSpace(docs.CoverLetter.PersonalInfo.Name)
	}
	if name == "" {
		return kind.Label()
	}
	return name + " - " + kind.Label()
}

// RenderHTML renders a self-contained, print-friendly HTML page.
func RenderHTML(docs types.Documents, kind types.DocumentKind, opts Options) (string, error) {
	var body strings.Builder
	writeHTMLNodes(&body, Walk(docs, kind))

	return executePage("print", pageData{
		Title:     DocumentTitle(docs, kind),
		Generated: opts.generated(),
		Body:      template.HTML(body.String()),
	})
}

func executePage(name string, data pageData) (string, error) {
	var result strings.Builder
	if err := pageTemplates.ExecuteTemplate(&result, name, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute " + name + " template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func writeHTMLNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		writeHTMLNode(b, n)
	}
}

func writeHTMLNode(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindSection:
		b.WriteString(`<section class="section">` + "\n")
		b.WriteString(`<h2 class="section-title">` + EscapeHTML(n.Text) + "</h2>\n")
		writeHTMLNodes(b, n.Children)
		b.WriteString("</section>\n")

	case KindGroup:
		class := "entry page-break-inside-avoid"
		if a := alignClass(n.Align); a != "" {
			class += " " + a
		}
		b.WriteString(`<div class="` + class + `">` + "\n")
		writeHTMLNodes(b, n.Children)
		b.WriteString("</div>\n")

	case KindHeading:
		switch n.Level {
		case 1:
			b.WriteString(`<h1 class="name">` + EscapeHTML(n.Text) + "</h1>\n")
		case 2:
			b.WriteString(`<p class="title">` + EscapeHTML(n.Text) + "</p>\n")
		default:
			b.WriteString(`<h3 class="entry-title">` + EscapeHTML(n.Text) + "</h3>\n")
		}

	case KindContact:
		b.WriteString(`<p class="contact">`)
		for i, l := range n.Links {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(htmlLink(l.Text, l.Href))
		}
		b.WriteString("</p>\n")

	case KindText:
		// the label prefixes the first paragraph only
		for i, para := range Paragraphs(n.Text) {
			b.WriteString(`<p class="text">`)
			if i == 0 && n.Label != "" {
				b.WriteString(`<span class="label">` + EscapeHTML(n.Label) + "</span>")
			}
			b.WriteString(styled(n.Style, htmlLink(para, n.Href)))
			b.WriteString("</p>\n")
		}

	case KindBullets:
		b.WriteString(`<ul class="bullets">` + "\n")
		for _, item := range n.Items {
			b.WriteString("<li>" + EscapeHTML(item) + "</li>\n")
		}
		b.WriteString("</ul>\n")

	case KindPairs:
		b.WriteString(`<div class="skills-grid">` + "\n")
		for _, p := range n.Pairs {
			b.WriteString(`<div class="skill-label">` + EscapeHTML(p.Label) + ":</div>")
			b.WriteString(`<div class="skill-value">` + EscapeHTML(p.Value) + "</div>\n")
		}
		b.WriteString("</div>\n")
	}
}

func htmlLink(text, href string) string {
	if href == "" {
		return EscapeHTML(text)
	}
	return `<a href="` + EscapeHTML(href) + `">` + EscapeHTML(text) + "</a>"
}

func styled(s Style, inner string) string {
	switch s {
	case StyleStrong:
		return "<strong>" + inner + "</strong>"
	case StyleEmphasis:
		return "<em>" + inner + "</em>"
	case StyleAccent:
		return `<span class="tech-used">` + inner + "</span>"
	default:
		return inner
	}
}

func alignClass(a Align) string {
	switch a {
	case AlignCenter:
		return "align-center"
	case AlignRight:
		return "align-right"
	default:
		return ""
	}
}
