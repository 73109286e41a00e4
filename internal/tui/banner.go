// Package tui renders the gate's minimal terminal output: one announcement
// line per stage. Everything else on the standard streams belongs to the
// stage commands themselves.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	labelStyle = lipgloss.NewStyle().Faint(true)
	stageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// StageBanner returns the single line printed before a stage runs, e.g.
// "[2/3] lint". Styling is applied only when color is true.
func StageBanner(index, total int, name string, color bool) string {
	label := fmt.Sprintf("[%d/%d]", index+1, total)
	if !color {
		return label + " " + name
	}
	return labelStyle.Render(label) + " " + stageStyle.Render(name)
}

// IsTerminal reports whether f is attached to a terminal, so styling can be
// disabled when output is piped.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
