package rendering

import "strings"

// EscapeHTML escapes the characters that are special in HTML text and
// attribute values: & < > " '
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&#34;")
		case '\'':
			result.WriteString("&#39;")
		case '\r':
			// dropped; \n carries the break
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeHTMLBreaks escapes text and turns each line break into <br>.
func EscapeHTMLBreaks(text string) string {
	return strings.ReplaceAll(EscapeHTML(text), "\n", "<br>")
}

// ExternalURL prefixes https:// onto an address that has no scheme.
func ExternalURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return u
	}
	return "https://" + u
}

// Paragraphs splits text on blank lines. Single line breaks stay inside a
// paragraph.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}
