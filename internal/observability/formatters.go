// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/localization"
	"github.com/jonathan/portfolio-site/internal/translations"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
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

// writeList writes up to maxItemsToShow items, then a count of the rest.
func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintTranslations summarizes the loaded translation table.
func (p *Printer) PrintTranslations(table translations.Table, loaded bool) {
	var sb strings.Builder

	source := "translation file"
	if !loaded {
		source = "built-in default (load failed)"
	}
	fmt.Fprintf(&sb, "Source:    %s\n", source)
	fmt.Fprintf(&sb, "Languages: %d\n\n", len(table))

	for _, code := range table.Languages() {
		fmt.Fprintf(&sb, "  %-4s %-3s %d keys\n", code, locale.DirectionFor(code), len(table[code]))
	}

	p.printBox("TRANSLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLocale outputs the result of a localization pass.
func (p *Printer) PrintLocale(state locale.State, report localization.Report) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Language:  %s\n", state.Code)
	fmt.Fprintf(&sb, "Direction: %s\n", state.Direction)
	if !report.TableFound {
		sb.WriteString("Table:     not found, page text unchanged\n")
	} else {
		fmt.Fprintf(&sb, "Applied:   %d elements\n", report.Applied)
	}

	if len(report.Missing) > 0 {
		fmt.Fprintf(&sb, "\nMissing keys (%d):\n", len(report.Missing))
		writeList(&sb, report.Missing)
	}

	p.printBox("LOCALIZATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverage outputs per-language missing keys against the reference language.
func (p *Printer) PrintCoverage(cov translations.Coverage) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Reference: %s (%d keys)\n", cov.Reference, cov.KeyCount)

	codes := make([]string, 0, len(cov.Missing))
	for code := range cov.Missing {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		missing := cov.Missing[code]
		if len(missing) == 0 {
			fmt.Fprintf(&sb, "\n%s: complete\n", code)
			continue
		}
		fmt.Fprintf(&sb, "\n%s: %d missing\n", code, len(missing))
		writeList(&sb, missing)
	}

	p.printBox("TRANSLATION COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCVDocument outputs a summary of a generated CV.
func (p *Printer) PrintCVDocument(doc *cv.Document, path string) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Language:  %s (%s)\n", doc.Language, doc.Direction)
	fmt.Fprintf(&sb, "File:      %s\n", doc.Filename)
	if path != "" {
		fmt.Fprintf(&sb, "Written:   %s\n", path)
	}
	fmt.Fprintf(&sb, "Size:      %d bytes\n", len(doc.Content))

	if len(doc.Missing) > 0 {
		fmt.Fprintf(&sb, "\nEmpty slots (%d):\n", len(doc.Missing))
		writeList(&sb, doc.Missing)
	}

	p.printBox("CV DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFormErrors outputs the displayed errors of the contact form.
func (p *Printer) PrintFormErrors(errs map[string]string) {
	if len(errs) == 0 {
		p.printBox("CONTACT FORM", "All fields valid")
		return
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, "✗ %-8s %s\n", f, errs[f])
	}
	p.printBox("CONTACT FORM", strings.TrimSuffix(sb.String(), "\n"))
}
