// Package observability provides formatted output utilities for the scan command.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/internship-finder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for the CLI
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

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSkills outputs the skills found in a resume.
func (p *Printer) PrintSkills(skills types.SkillSet) {
	content := "No known skills found"
	if len(skills) > 0 {
		content = strings.Join(skills, ", ")
	}
	p.printBox(fmt.Sprintf("SKILLS FOUND (%d)", len(skills)), content)
}

// PrintSuggestions outputs the catalog job titles that matched.
func (p *Printer) PrintSuggestions(jobs []string) {
	var sb strings.Builder
	if len(jobs) == 0 {
		sb.WriteString("No catalog jobs match these skills")
	}
	for i, title := range jobs {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, title))
	}
	p.printBox(fmt.Sprintf("SUGGESTED JOBS (%d)", len(jobs)), sb.String())
}

// PrintListings outputs one box per listing source.
func (p *Printer) PrintListings(groups []types.ListingGroup) {
	for _, group := range groups {
		var sb strings.Builder
		if len(group.Listings) == 0 {
			sb.WriteString("No listings found")
		}
		for i, l := range group.Listings {
			sb.WriteString(fmt.Sprintf("%2d. %s (%s)\n", i+1, l.Title, l.Company))
			sb.WriteString(fmt.Sprintf("    %s\n", l.Link))
		}
		p.printBox(fmt.Sprintf("%s (%d)", strings.ToUpper(group.Heading), len(group.Listings)), sb.String())
	}
}
