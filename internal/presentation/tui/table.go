package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/solliq/pkg/domain"
)

// CurveMarkdown renders a sampled curve as a markdown table.
func CurveMarkdown(title string, c domain.Curve) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	b.WriteString("| p (GPa) | T (K) |\n|---:|---:|\n")
	for _, pt := range c.Points {
		fmt.Fprintf(&b, "| %.2f | %.1f |\n", pt.Pressure, pt.Temperature)
	}
	for _, w := range c.Warnings {
		fmt.Fprintf(&b, "\n> **%s**: %s\n", w.Code, w.Message)
	}
	return b.String()
}

// Row is one labelled value of a key/value table.
type Row struct {
	Label string
	Value string
}

// KeyValueMarkdown renders rows as a two-column markdown table.
func KeyValueMarkdown(title string, rows []Row) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	b.WriteString("| | |\n|---|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Label, r.Value)
	}
	return b.String()
}
