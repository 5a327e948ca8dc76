package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintResume outputs which résumé sections have content and how much.
func (p *Printer) PrintResume(r types.ResumeDocument) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(r.PersonalInfo.Name)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(r.PersonalInfo.Title)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(r.PersonalInfo.Email)))
	sb.WriteString("\n")

	summary := len(rendering.Paragraphs(r.ProfessionalSummary.Content))
	sb.WriteString(fmt.Sprintf("Summary:     %d paragraph(s)\n", summary))

	var skills []string
	for _, c := range r.TechnicalSkills.Categories() {
		if strings.TrimSpace(c.Value) != "" {
			skills = append(skills, c.Label)
		}
	}
	sb.WriteString(fmt.Sprintf("Skills:      %d categor(ies)\n", len(skills)))
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}

	sb.WriteString(fmt.Sprintf("Experience:  %d\n", len(r.Experience)))
	count := min(len(r.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := r.Experience[i]
		sb.WriteString(fmt.Sprintf("  • %s (%d achievements)\n", orDash(exp.Company), len(exp.Achievements)))
	}
	if len(r.Experience) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Experience)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("Projects:    %d\n", len(r.Projects)))
	sb.WriteString(fmt.Sprintf("Education:   %d", len(r.Education)))

	p.printBox("RESUME", sb.String())
}

// PrintCoverLetter outputs the recipient block and which letter parts are filled.
func (p *Printer) PrintCoverLetter(c types.CoverLetterDocument) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("To:       %s\n", orDash(c.RecipientInfo.HiringManager)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(c.RecipientInfo.Company)))
	sb.WriteString(fmt.Sprintf("Position: %s\n", orDash(c.RecipientInfo.Position)))
	sb.WriteString(fmt.Sprintf("Date:     %s\n", orDash(c.RecipientInfo.Date)))
	sb.WriteString("\n")

	parts := []struct {
		label string
		text  string
	}{
		{"Opening", c.Content.Opening},
		{"Body", c.Content.Body},
		{"Closing", c.Content.Closing},
	}
	for i, part := range parts {
		sb.WriteString(fmt.Sprintf("%-9s %d paragraph(s)", part.label+":", len(rendering.Paragraphs(part.text))))
		if i < len(parts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COVER LETTER", sb.String())
}

// PrintDocuments prints both document summaries.
func (p *Printer) PrintDocuments(docs types.Documents) {
	p.PrintResume(docs.Resume)
	p.PrintCoverLetter(docs.CoverLetter)
}

// PrintValidation outputs the result of validating a documents record. A
// nil err prints a success box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENTS ARE VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var ve *schemas.ValidationError
	if !errors.As(err, &ve) {
		p.printBox("VALIDATION ERROR", err.Error())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", len(ve.Errors)))
	for i, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s", fe.Message))
		if i < len(ve.Errors)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("SCHEMA VIOLATIONS", sb.String())
}

// PrintArtifacts lists written export files with their sizes.
func (p *Printer) PrintArtifacts(artifacts []*rendering.Artifact) {
	if len(artifacts) == 0 {
		return
	}

	var sb strings.Builder
	for i, a := range artifacts {
		sb.WriteString(fmt.Sprintf("%s  %d bytes", a.Filename, len(a.Data)))
		if i < len(artifacts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPORTED", sb.String())
}
