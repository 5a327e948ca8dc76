package rendering

import (
	"strings"
	"unicode"
)

// PointsToMM converts typographic points to millimetres.
const PointsToMM = 25.4 / 72

// FontWeight selects the face used to measure and draw text.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
	WeightItalic
)

// Measurer reports the rendered width of text in millimetres.
type Measurer interface {
	Width(text string, sizePt float64, weight FontWeight) float64
}

// HelveticaMetrics approximates Helvetica advance widths. It is close enough
// to drive line breaking for the rasterized output, which uses the same
// sans-serif family.
type HelveticaMetrics struct{}

// Width implements Measurer.
func (HelveticaMetrics) Width(text string, sizePt float64, weight FontWeight) float64 {
	var em float64
	for _, r := range text {
		em += advance(r)
	}
	if weight == WeightBold {
		em *= 1.06
	}
	return em * sizePt * PointsToMM
}

// advance is the glyph width in ems.
func advance(r rune) float64 {
	switch {
	case r == ' ':
		return 0.278
	case strings.ContainsRune("iljI!|.,:;'`", r):
		return 0.24
	case strings.ContainsRune("ftr()[]{}-/\\\"", r):
		return 0.333
	case strings.ContainsRune("mwMW@", r):
		return 0.85
	case unicode.IsDigit(r):
		return 0.556
	case unicode.IsUpper(r):
		return 0.667
	case r == '•':
		return 0.35
	default:
		return 0.52
	}
}

// Wrap breaks text into lines no wider than width. Words are never split; a
// single word wider than the line gets a line of its own. Line breaks in the
// input start new lines and blank input lines are kept as "".
func Wrap(text string, width, sizePt float64, weight FontWeight, m Measurer) []string {
	var lines []string
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if m.Width(candidate, sizePt, weight) <= width {
				cur = candidate
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}
