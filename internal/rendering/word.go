package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// wordPreamble asks Word to open the file in print layout at 90% zoom. It is
// injected as a value because html/template drops comments from template text.
const wordPreamble = `<!--[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>90</w:Zoom><w:DoNotPromptForConvert/><w:DoNotShowInsertionsAndDeletions/></w:WordDocument></xml><![endif]-->`

// RenderWord renders HTML carrying the Office namespaces so word processors
// open it as a document. Line breaks become explicit <br> elements.
func RenderWord(docs types.Documents, kind types.DocumentKind, opts Options) (string, error) {
	var body strings.Builder
	writeWordNodes(&body, Walk(docs, kind))

	return executePage("word", pageData{
		Title:     DocumentTitle(docs, kind),
		Generated: opts.generated(),
		Preamble:  template.HTML(wordPreamble),
		Body:      template.HTML(body.String()),
	})
}

func writeWordNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		writeWordNode(b, n)
	}
}

func writeWordNode(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindSection:
		b.WriteString("<h2>" + EscapeHTML(n.Text) + "</h2>\n")
		writeWordNodes(b, n.Children)

	case KindGroup:
		if a := alignClass(n.Align); a != "" {
			b.WriteString(`<div class="` + a + `">` + "\n")
			writeWordNodes(b, n.Children)
			b.WriteString("</div>\n")
			return
		}
		writeWordNodes(b, n.Children)

	case KindHeading:
		switch n.Level {
		case 1:
			b.WriteString("<h1>" + EscapeHTML(n.Text) + "</h1>\n")
		case 2:
			b.WriteString(`<p class="subtitle">` + EscapeHTML(n.Text) + "</p>\n")
		default:
			b.WriteString("<h3>" + EscapeHTML(n.Text) + "</h3>\n")
		}

	case KindContact:
		parts := make([]string, 0, len(n.Links))
		for _, l := range n.Links {
			parts = append(parts, EscapeHTML(l.Text))
		}
		b.WriteString(`<p class="contact">` + strings.Join(parts, " | ") + "</p>\n")

	case KindText:
		for i, para := range Paragraphs(n.Text) {
			inner := EscapeHTMLBreaks(para)
			if i == 0 {
				inner = EscapeHTML(n.Label) + inner
			}
			switch n.Style {
			case StyleAccent:
				b.WriteString(`<p class="tech-used">` + inner + "</p>\n")
			case StyleStrong:
				b.WriteString("<p><b>" + inner + "</b></p>\n")
			case StyleEmphasis:
				b.WriteString("<p><i>" + inner + "</i></p>\n")
			default:
				b.WriteString("<p>" + inner + "</p>\n")
			}
		}

	case KindBullets:
		b.WriteString("<ul>\n")
		for _, item := range n.Items {
			b.WriteString("<li>" + EscapeHTMLBreaks(item) + "</li>\n")
		}
		b.WriteString("</ul>\n")

	case KindPairs:
		b.WriteString(`<table class="skills-table">` + "\n")
		for _, p := range n.Pairs {
			b.WriteString(`<tr><td class="skill-label">` + EscapeHTML(p.Label) + `:</td><td>` + EscapeHTML(p.Value) + "</td></tr>\n")
		}
		b.WriteString("</table>\n")
	}
}
