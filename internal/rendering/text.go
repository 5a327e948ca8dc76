package rendering

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// TextDivider separates the résumé header from the body.
var TextDivider = strings.Repeat("=", 80)

// RenderText renders the document as plain UTF-8 text.
func RenderText(docs types.Documents, kind types.DocumentKind) string {
	var b strings.Builder
	for _, n := range Walk(docs, kind) {
		writeTextNode(&b, n, true)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTextNode(b *strings.Builder, n Node, topLevel bool) {
	switch n.Kind {
	case KindSection:
		b.WriteString(n.Text + "\n")
		b.WriteString(strings.Repeat("-", len(n.Text)) + "\n")
		for _, c := range n.Children {
			writeTextNode(b, c, false)
		}
		// groups already end with a blank line
		if last := n.Children[len(n.Children)-1]; last.Kind != KindGroup {
			b.WriteString("\n")
		}

	case KindGroup:
		for _, c := range n.Children {
			writeTextNode(b, c, false)
		}
		if isHeader(n) {
			b.WriteString(TextDivider + "\n")
		}
		b.WriteString("\n")

	case KindHeading:
		if n.Level == 1 {
			b.WriteString(strings.ToUpper(n.Text) + "\n")
			return
		}
		b.WriteString(n.Text + "\n")

	case KindContact:
		b.WriteString("Contact Information:\n")
		for _, l := range n.Links {
			b.WriteString(contactLabel(l) + l.Text + "\n")
		}

	case KindText:
		b.WriteString(n.Label + strings.ReplaceAll(n.Text, "\r\n", "\n") + "\n")
		if topLevel {
			b.WriteString("\n")
		}

	case KindBullets:
		for _, item := range n.Items {
			b.WriteString("• " + item + "\n")
		}

	case KindPairs:
		for _, p := range n.Pairs {
			b.WriteString(p.Label + ": " + p.Value + "\n")
		}
	}
}

// isHeader reports whether a group is the résumé header block.
func isHeader(n Node) bool {
	return len(n.Children) > 0 && n.Children[0].Kind == KindHeading && n.Children[0].Level == 1
}

func contactLabel(l Link) string {
	switch {
	case strings.HasPrefix(l.Href, "mailto:"):
		return "Email: "
	case strings.HasPrefix(l.Href, "tel:"):
		return "Phone: "
	case strings.Contains(strings.ToLower(l.Text), "linkedin"):
		return "LinkedIn: "
	case strings.Contains(strings.ToLower(l.Text), "github"):
		return "GitHub: "
	default:
		return "Website: "
	}
}
