// Package display provides terminal output formatting for tuberfind.
package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ddddgit/KOL/internal/discovery"
)

const separator = " • "

// maxNameLen bounds channel names so one verbose channel cannot wrap the
// whole report.
const maxNameLen = 60

// TerminalFormatter formats discovered channels for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatRecord formats a single channel for display.
func (f *TerminalFormatter) FormatRecord(rec discovery.Record) string {
	var lines []string

	// Header: Name • N subscribers
	header := fmt.Sprintf("%s%s%d subscribers", f.TruncateText(rec.Profile.Title, maxNameLen), separator, rec.Profile.Subscribers)
	lines = append(lines, header)

	// Country and upload recency
	lines = append(lines, "  "+f.formatActivity(rec))

	// URL
	if rec.URL != "" {
		lines = append(lines, "  "+rec.URL)
	}

	return strings.Join(lines, "\n") + "\n"
}

// formatActivity formats the country and latest upload into a single line.
func (f *TerminalFormatter) formatActivity(rec discovery.Record) string {
	var parts []string

	if rec.Profile.Country != "" {
		parts = append(parts, rec.Profile.Country)
	}
	if rec.HasVideo {
		parts = append(parts, "last upload "+f.FormatTimestamp(rec.VideoDate))
		parts = append(parts, fmt.Sprintf("%d views", rec.VideoViews))
	} else {
		parts = append(parts, "last upload N/A")
	}

	return strings.Join(parts, separator)
}

// FormatReport formats discovered channels sorted by subscriber count,
// largest first. Ties keep their discovery order.
func (f *TerminalFormatter) FormatReport(records []discovery.Record) string {
	if len(records) == 0 {
		return "No channels to display.\n"
	}

	sorted := make([]discovery.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Profile.Subscribers > sorted[j].Profile.Subscribers
	})

	var formatted []string
	for _, rec := range sorted {
		formatted = append(formatted, f.FormatRecord(rec))
	}

	return strings.Join(formatted, "\n")
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return text[:maxLen-3] + "..."
}
