// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-paginator/internal/pagination"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxUnitsToShow caps the units listed per column
	maxUnitsToShow = 12
)

// Printer handles formatted output for verbose mode
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
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintResult outputs a run summary followed by one box per page.
func (p *Printer) PrintResult(result *pagination.Result) {
	if result == nil {
		return
	}

	overflowing := 0
	for _, page := range result.Pages {
		if page.Metrics.Overflow {
			overflowing++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Topology:  %s\n", result.Topology))
	sb.WriteString(fmt.Sprintf("Units:     %d\n", result.UnitCount))
	sb.WriteString(fmt.Sprintf("Pages:     %d", result.PageCount()))
	if overflowing > 0 {
		sb.WriteString(fmt.Sprintf("\nOverflow:  %d page(s) exceed capacity", overflowing))
	}
	p.printBox("PAGINATION RESULT", sb.String())

	for i := range result.Pages {
		p.PrintPage(result.Topology, &result.Pages[i])
	}
}

// PrintPage outputs the units of each column of a page with fill levels.
func (p *Printer) PrintPage(topology pagination.Topology, page *pagination.AnnotatedPage) {
	if page == nil {
		return
	}

	var sb strings.Builder
	m := page.Metrics

	if topology == pagination.TopologySingleColumn {
		sb.WriteString(fmt.Sprintf("Content %s\n", fill(m.PrimaryHeight, m.PrimaryCapacity)))
		writeUnits(&sb, page.Primary)
	} else {
		sb.WriteString(fmt.Sprintf("Primary %s\n", fill(m.PrimaryHeight, m.PrimaryCapacity)))
		writeUnits(&sb, page.Primary)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Secondary %s\n", fill(m.SecondaryHeight, m.SecondaryCapacity)))
		writeUnits(&sb, page.Secondary)
	}

	title := fmt.Sprintf("PAGE %d", page.Index+1)
	if m.Overflow {
		title += " (OVERFLOW)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUnits outputs extracted units before packing.
func (p *Printer) PrintUnits(units pagination.Units) {
	if units.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d units\n", units.Len()))
	for _, group := range []struct {
		name  string
		units []pagination.ContentUnit
	}{{"primary", units.Primary}, {"secondary", units.Secondary}} {
		if len(group.units) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", group.name))
		for _, u := range group.units {
			split := ""
			if u.Splittable {
				split = " splittable"
			}
			sb.WriteString(fmt.Sprintf("  %-18s %7.1fpt%s\n", u.ID, u.EstimatedHeight, split))
		}
	}
	p.printBox("CONTENT UNITS", strings.TrimSuffix(sb.String(), "\n"))
}

func fill(height, capacity float64) string {
	if capacity <= 0 {
		return fmt.Sprintf("%.0fpt", height)
	}
	return fmt.Sprintf("%.0f/%.0fpt (%.0f%%)", height, capacity, 100*height/capacity)
}

func writeUnits(sb *strings.Builder, units []pagination.AnnotatedUnit) {
	if len(units) == 0 {
		sb.WriteString("  (empty)\n")
		return
	}

	count := min(len(units), maxUnitsToShow)
	for i := 0; i < count; i++ {
		u := units[i]
		sb.WriteString(fmt.Sprintf("  • %-18s %7.1fpt %s\n", u.ID, u.EstimatedHeight, affordances(u)))
	}
	if len(units) > maxUnitsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(units)-maxUnitsToShow))
	}
}

// affordances renders edit capabilities as "[↑↓✕]" with "·" for missing ones
func affordances(u pagination.AnnotatedUnit) string {
	mark := func(ok bool, sym string) string {
		if ok {
			return sym
		}
		return "·"
	}
	return "[" + mark(u.CanMoveUp, "↑") + mark(u.CanMoveDown, "↓") + mark(u.CanDelete, "✕") + "]"
}
