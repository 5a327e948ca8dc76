package rendering

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-editor/internal/types"
)

// Format is an export format.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatWord Format = "doc"
	FormatText Format = "txt"
)

// Formats lists every export format in menu order.
var Formats = []Format{FormatPDF, FormatHTML, FormatWord, FormatText}

// ParseFormat accepts a format name or its file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	case "doc", "word":
		return FormatWord, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected pdf, html, doc or txt)", s)
	}
}

// Extension is the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType is the MIME type the artifact is delivered with.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatWord:
		return "application/msword"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Label is the human name of the format.
func (f Format) Label() string {
	switch f {
	case FormatHTML:
		return "HTML"
	case FormatPDF:
		return "PDF"
	case FormatWord:
		return "Word document"
	case FormatText:
		return "text file"
	default:
		return string(f)
	}
}

// Filename builds the download name "<Name>_<Kind>.<ext>". Whitespace runs in
// the name become underscores and every other character outside [A-Za-z0-9_]
// is dropped; a name with nothing left becomes "Untitled".
func Filename(name string, kind types.DocumentKind, format Format) string {
	suffix := "Resume"
	if kind == types.KindCoverLetter {
		suffix = "Cover_Letter"
	}
	return fmt.Sprintf("%s_%s.%s", SanitizeName(name), suffix, format.Extension())
}

// SanitizeName reduces a person's name to a filename-safe token.
func SanitizeName(name string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r < unicode.MaxASCII && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "Untitled"
	}
	return out
}
