package rendering

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// Font sizes in points for the paged layout.
const (
	sizeName    = 24
	sizeTitle   = 12
	sizeSection = 14
	sizeEntry   = 11
	sizeBody    = 10

	// leading is line height as a multiple of font size.
	leading = 1.2
	// ascent is the baseline offset from the top of a line box.
	ascent = 0.8

	bulletIndent = 6.0
	blockGap     = 3.0
)

// PageGeometry is a page size and uniform margin in millimetres.
type PageGeometry struct {
	Width  float64
	Height float64
	Margin float64
}

// A4 is 210 x 297 mm with 20 mm margins.
var A4 = PageGeometry{Width: 210, Height: 297, Margin: 20}

// ContentWidth is the printable width.
func (g PageGeometry) ContentWidth() float64 { return g.Width - 2*g.Margin }

// Bottom is the lowest y a line may reach.
func (g PageGeometry) Bottom() float64 { return g.Height - g.Margin }

// OpKind is the kind of drawing operation.
type OpKind int

const (
	OpText OpKind = iota
	OpRule
)

// DrawOp is one positioned drawing operation. Coordinates are millimetres
// from the top-left corner; Y is the text baseline. For rules X..X2 is the
// horizontal extent.
type DrawOp struct {
	Kind   OpKind
	X      float64
	Y      float64
	X2     float64
	Text   string
	SizePt float64
	Weight FontWeight
	Align  Align
	Href   string
}

// Page is one page of positioned operations.
type Page struct {
	Number int
	Ops    []DrawOp
}

// LineHeight is the vertical advance of one line at sizePt, in millimetres.
func LineHeight(sizePt float64) float64 {
	return sizePt * PointsToMM * leading
}

// Paginate lays out a document on A4 pages.
func Paginate(docs types.Documents, kind types.DocumentKind, m Measurer) []Page {
	return PaginateNodes(Walk(docs, kind), A4, m)
}

// PaginateNodes lays out nodes on pages of the given geometry. Text is
// word-wrapped to the content width and a new page starts whenever the next
// line would cross the bottom margin, so no line is split across pages.
// The result always has at least one page.
func PaginateNodes(nodes []Node, geom PageGeometry, m Measurer) []Page {
	if m == nil {
		m = HelveticaMetrics{}
	}
	l := &layout{geom: geom, m: m}
	l.newPage()
	for _, n := range nodes {
		l.node(n, AlignLeft)
	}
	return l.pages
}

type layout struct {
	geom  PageGeometry
	m     Measurer
	pages []Page
	y     float64
}

func (l *layout) newPage() {
	l.pages = append(l.pages, Page{Number: len(l.pages) + 1})
	l.y = l.geom.Margin
}

func (l *layout) page() *Page {
	return &l.pages[len(l.pages)-1]
}

// ensure starts a new page unless h more millimetres fit on this one.
func (l *layout) ensure(h float64) {
	if l.y+h > l.geom.Bottom() && l.y > l.geom.Margin {
		l.newPage()
	}
}

func (l *layout) gap(h float64) {
	l.y += h
}

func (l *layout) anchor(align Align) float64 {
	switch align {
	case AlignCenter:
		return l.geom.Width / 2
	case AlignRight:
		return l.geom.Width - l.geom.Margin
	default:
		return l.geom.Margin
	}
}

// line places one already-wrapped line and returns its baseline.
func (l *layout) line(op DrawOp) float64 {
	lh := LineHeight(op.SizePt)
	l.ensure(lh)
	op.Kind = OpText
	op.Y = l.y + op.SizePt*PointsToMM*ascent
	if op.Text != "" {
		p := l.page()
		p.Ops = append(p.Ops, op)
	}
	l.y += lh
	return op.Y
}

// paragraph wraps text to the content width and places every line.
func (l *layout) paragraph(text string, size float64, weight FontWeight, align Align, href string) {
	for _, ln := range Wrap(text, l.geom.ContentWidth(), size, weight, l.m) {
		if ln == "" {
			l.gap(LineHeight(size) / 2)
			continue
		}
		l.line(DrawOp{X: l.anchor(align), Text: ln, SizePt: size, Weight: weight, Align: align, Href: href})
	}
}

func (l *layout) node(n Node, align Align) {
	switch n.Kind {
	case KindSection:
		headH := LineHeight(sizeSection)
		// keep the heading with at least one line of its content
		l.ensure(headH + 2.5 + LineHeight(sizeBody))
		l.line(DrawOp{X: l.geom.Margin, Text: n.Text, SizePt: sizeSection, Weight: WeightBold})
		p := l.page()
		p.Ops = append(p.Ops, DrawOp{Kind: OpRule, X: l.geom.Margin, X2: l.geom.Width - l.geom.Margin, Y: l.y})
		l.gap(2.5)
		for _, c := range n.Children {
			l.node(c, AlignLeft)
		}

	case KindGroup:
		for _, c := range n.Children {
			l.node(c, n.Align)
		}
		l.gap(blockGap)

	case KindHeading:
		size, weight := float64(sizeEntry), WeightBold
		switch n.Level {
		case 1:
			size = sizeName
		case 2:
			size, weight = sizeTitle, WeightNormal
		}
		l.paragraph(n.Text, size, weight, align, "")

	case KindContact:
		parts := make([]string, 0, len(n.Links))
		for _, lk := range n.Links {
			parts = append(parts, lk.Text)
		}
		l.paragraph(strings.Join(parts, " | "), sizeBody, WeightNormal, align, "")

	case KindText:
		weight := WeightNormal
		switch n.Style {
		case StyleStrong:
			weight = WeightBold
		case StyleEmphasis, StyleAccent:
			weight = WeightItalic
		}
		l.paragraph(n.Label+n.Text, sizeBody, weight, align, n.Href)

	case KindBullets:
		width := l.geom.ContentWidth() - bulletIndent
		for _, item := range n.Items {
			for i, ln := range Wrap(item, width, sizeBody, WeightNormal, l.m) {
				if ln == "" {
					continue
				}
				y := l.line(DrawOp{X: l.geom.Margin + bulletIndent, Text: ln, SizePt: sizeBody})
				if i == 0 {
					p := l.page()
					p.Ops = append(p.Ops, DrawOp{X: l.geom.Margin + 2, Y: y, Text: "•", SizePt: sizeBody})
				}
			}
		}

	case KindPairs:
		for _, pr := range n.Pairs {
			l.paragraph(pr.Label+": "+pr.Value, sizeBody, WeightNormal, AlignLeft, "")
		}
		l.gap(blockGap)
	}
}
