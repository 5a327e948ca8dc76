// Package rendering turns résumé and cover letter documents into exportable
// artifacts: print HTML, Word-compatible HTML, plain text and paged PDF.
//
// Every format is produced from the same neutral node sequence built by
// WalkResume and WalkCoverLetter, so section order and omission rules live in
// one place.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// NodeKind classifies a node in the document walk.
type NodeKind int

const (
	// KindHeading is a heading; Level 1 is the document name, 2 the
	// professional title, 4 an entry heading.
	KindHeading NodeKind = iota
	// KindSection is a titled section; its heading is Text and its content
	// is Children. Renderers emit the section heading only via this node.
	KindSection
	// KindGroup keeps Children together (one experience entry, the letter's
	// sender block).
	KindGroup
	// KindText is a block of free text. Embedded line breaks are significant.
	KindText
	// KindBullets is a bullet list of Items.
	KindBullets
	// KindPairs is a labelled key/value list (the skills block).
	KindPairs
	// KindContact is a single line of contact Links.
	KindContact
)

// Style is the emphasis applied to a text node.
type Style int

const (
	StylePlain Style = iota
	StyleStrong
	StyleEmphasis
	StyleAccent
)

// Align is the horizontal alignment of a node.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Pair is one labelled value.
type Pair struct {
	Label string
	Value string
}

// Link is a piece of text with an optional target.
type Link struct {
	Text string
	Href string
}

// Node is one element of the neutral document walk.
type Node struct {
	Kind     NodeKind
	Level    int
	Text     string
	Label    string // prefix rendered before Text, e.g. "Technologies: "
	Href     string
	Style    Style
	Align    Align
	Items    []string
	Pairs    []Pair
	Links    []Link
	Children []Node
}

// Section titles in display order.
const (
	TitleSummary    = "PROFESSIONAL SUMMARY"
	TitleSkills     = "TECHNICAL SKILLS"
	TitleExperience = "PROFESSIONAL EXPERIENCE"
	TitleProjects   = "PROJECTS"
	TitleEducation  = "EDUCATION"
)

// WalkResume produces the node sequence for a résumé: header, summary,
// skills, experience, projects, education. Sections without renderable
// content are left out entirely.
func WalkResume(r types.ResumeDocument) []Node {
	nodes := []Node{resumeHeader(r.PersonalInfo)}

	if summary := strings.TrimSpace(r.ProfessionalSummary.Content); summary != "" {
		nodes = append(nodes, section(TitleSummary, Node{Kind: KindText, Text: summary}))
	}

	if pairs := skillPairs(r.TechnicalSkills); len(pairs) > 0 {
		nodes = append(nodes, section(TitleSkills, Node{Kind: KindPairs, Pairs: pairs}))
	}

	var groups []Node
	for _, exp := range r.Experience {
		if g, ok := experienceGroup(exp); ok {
			groups = append(groups, g)
		}
	}
	if len(groups) > 0 {
		nodes = append(nodes, section(TitleExperience, groups...))
	}

	groups = nil
	for _, p := range r.Projects {
		if g, ok := projectGroup(p); ok {
			groups = append(groups, g)
		}
	}
	if len(groups) > 0 {
		nodes = append(nodes, section(TitleProjects, groups...))
	}

	groups = nil
	for _, edu := range r.Education {
		if g, ok := educationGroup(edu); ok {
			groups = append(groups, g)
		}
	}
	if len(groups) > 0 {
		nodes = append(nodes, section(TitleEducation, groups...))
	}

	return nodes
}

// WalkCoverLetter produces the node sequence for a cover letter: sender,
// date, recipient, Re: line, salutation, opening, body, closing, sign-off.
func WalkCoverLetter(c types.CoverLetterDocument) []Node {
	var nodes []Node
	info := c.PersonalInfo

	var sender []Node
	if name := strings.TrimSpace(info.Name); name != "" {
		sender = append(sender, Node{Kind: KindText, Text: name, Style: StyleStrong})
	}
	if email := strings.TrimSpace(info.Email); email != "" {
		sender = append(sender, Node{Kind: KindText, Text: email, Href: "mailto:" + email})
	}
	if phone := strings.TrimSpace(info.Phone); phone != "" {
		sender = append(sender, Node{Kind: KindText, Text: phone, Href: "tel:" + phone})
	}
	if li := strings.TrimSpace(info.LinkedIn); li != "" {
		sender = append(sender, Node{Kind: KindText, Text: li, Href: ExternalURL(li)})
	}
	if len(sender) > 0 {
		nodes = append(nodes, Node{Kind: KindGroup, Align: AlignRight, Children: sender})
	}

	rcpt := c.RecipientInfo
	if date := strings.TrimSpace(rcpt.Date); date != "" {
		nodes = append(nodes, group(Node{Kind: KindText, Text: date}))
	}

	var recipient []Node
	if hm := strings.TrimSpace(rcpt.HiringManager); hm != "" {
		recipient = append(recipient, Node{Kind: KindText, Text: hm, Style: StyleStrong})
	}
	if co := strings.TrimSpace(rcpt.Company); co != "" {
		recipient = append(recipient, Node{Kind: KindText, Text: co})
	}
	if len(recipient) > 0 {
		nodes = append(nodes, group(recipient...))
	}

	if pos := strings.TrimSpace(rcpt.Position); pos != "" {
		nodes = append(nodes, group(Node{Kind: KindText, Text: "Re: " + pos, Style: StyleStrong}))
	}

	nodes = append(nodes, group(Node{Kind: KindText, Text: "Dear " + salutationName(rcpt.HiringManager) + ","}))

	for _, block := range []string{c.Content.Opening, c.Content.Body, c.Content.Closing} {
		if text := strings.TrimSpace(block); text != "" {
			nodes = append(nodes, group(Node{Kind: KindText, Text: text}))
		}
	}

	signOff := "Sincerely,"
	if name := strings.TrimSpace(info.Name); name != "" {
		signOff += "\n" + name
	}
	nodes = append(nodes, group(Node{Kind: KindText, Text: signOff}))

	return nodes
}

// Walk dispatches on the document kind.
func Walk(docs types.Documents, kind types.DocumentKind) []Node {
	if kind == types.KindCoverLetter {
		return WalkCoverLetter(docs.CoverLetter)
	}
	return WalkResume(docs.Resume)
}

func resumeHeader(info types.PersonalInfo) Node {
	children := []Node{{Kind: KindHeading, Level: 1, Text: strings.TrimSpace(info.Name)}}
	if title := strings.TrimSpace(info.Title); title != "" {
		children = append(children, Node{Kind: KindHeading, Level: 2, Text: title})
	}
	if links := contactLinks(info); len(links) > 0 {
		children = append(children, Node{Kind: KindContact, Links: links})
	}
	return Node{Kind: KindGroup, Align: AlignCenter, Children: children}
}

func contactLinks(info types.PersonalInfo) []Link {
	var links []Link
	if v := strings.TrimSpace(info.Email); v != "" {
		links = append(links, Link{Text: v, Href: "mailto:" + v})
	}
	if v := strings.TrimSpace(info.Phone); v != "" {
		links = append(links, Link{Text: v, Href: "tel:" + v})
	}
	if v := strings.TrimSpace(info.Website); v != "" {
		links = append(links, Link{Text: v, Href: ExternalURL(v)})
	}
	if v := strings.TrimSpace(info.LinkedIn); v != "" {
		links = append(links, Link{Text: v, Href: ExternalURL(v)})
	}
	if v := strings.TrimSpace(info.GitHub); v != "" {
		links = append(links, Link{Text: v, Href: ExternalURL(v)})
	}
	return links
}

func skillPairs(s types.TechnicalSkills) []Pair {
	var pairs []Pair
	for _, c := range s.Categories() {
		if v := strings.TrimSpace(c.Value); v != "" {
			pairs = append(pairs, Pair{Label: c.Label, Value: v})
		}
	}
	return pairs
}

func experienceGroup(exp types.Experience) (Node, bool) {
	var children []Node
	if h := joinNonBlank(" | ", exp.Company, exp.Location); h != "" {
		children = append(children, Node{Kind: KindHeading, Level: 4, Text: h})
	}
	if line := joinNonBlank(" | ", exp.Position, exp.Duration); line != "" {
		children = append(children, Node{Kind: KindText, Text: line})
	}
	if tech := strings.TrimSpace(exp.Technologies); tech != "" {
		children = append(children, Node{Kind: KindText, Label: "Technologies: ", Text: tech, Style: StyleAccent})
	}
	if items := nonBlank(exp.Achievements); len(items) > 0 {
		children = append(children, Node{Kind: KindBullets, Items: items})
	}
	return group(children...), len(children) > 0
}

func projectGroup(p types.Project) (Node, bool) {
	var children []Node
	if h := joinNonBlank(" | ", p.Name, p.Duration); h != "" {
		children = append(children, Node{Kind: KindHeading, Level: 4, Text: h})
	}
	if tech := strings.TrimSpace(p.Technologies); tech != "" {
		children = append(children, Node{Kind: KindText, Label: "Technologies: ", Text: tech, Style: StyleAccent})
	}
	if items := nonBlank(p.Description); len(items) > 0 {
		children = append(children, Node{Kind: KindBullets, Items: items})
	}
	if u := strings.TrimSpace(p.URL); u != "" {
		children = append(children, Node{Kind: KindText, Label: "URL: ", Text: u, Href: ExternalURL(u)})
	}
	return group(children...), len(children) > 0
}

func educationGroup(edu types.Education) (Node, bool) {
	var children []Node
	if h := joinNonBlank(" | ", edu.Institution, edu.Duration); h != "" {
		children = append(children, Node{Kind: KindHeading, Level: 4, Text: h})
	}
	if d := strings.TrimSpace(edu.Degree); d != "" {
		children = append(children, Node{Kind: KindText, Text: d})
	}
	return group(children...), len(children) > 0
}

func section(title string, children ...Node) Node {
	return Node{Kind: KindSection, Text: title, Children: children}
}

func group(children ...Node) Node {
	return Node{Kind: KindGroup, Children: children}
}

func salutationName(hiringManager string) string {
	if hm := strings.TrimSpace(hiringManager); hm != "" {
		return hm
	}
	return "Hiring Manager"
}

func joinNonBlank(sep string, parts ...string) string {
	return strings.Join(nonBlank(parts), sep)
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
