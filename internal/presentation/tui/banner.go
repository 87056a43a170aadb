package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"           _ _ _       ",
	" ___  ___ | | (_) __ _ ",
	"/ __|/ _ \\| | | |/ _` |",
	"\\__ \\ (_) | | | | (_| |",
	"|___/\\___/|_|_|_|\\__, |",
	"                    |_|",
}

// warm gradient, solidus to liquidus
var bannerColors = []string{"#fde047", "#fbbf24", "#f97316", "#ef4444", "#dc2626", "#991b1b"}

// PrintBanner outputs the solliq ASCII art banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintf(w, "  melting curves %s\n\n", termenv.String(version).Faint())
}

// Warn styles a warning line for terminal output.
func Warn(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("warning: " + msg).Foreground(p.Color("#f59e0b")).String()
}
