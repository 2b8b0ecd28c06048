// Package ui renders bfte's terminal output with lipgloss.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fx-xf/bfte/strength"
)

var (
	ColorCyan   = lipgloss.Color("#2CD7C7")
	ColorGreen  = lipgloss.Color("#5FD75F")
	ColorYellow = lipgloss.Color("#F4D03F")
	ColorPurple = lipgloss.Color("#AF87FF")
	ColorRed    = lipgloss.Color("#E74C3C")
	ColorMuted  = lipgloss.Color("#6C7A89")
)

// Styles are the shared text and box styles.
var Styles = struct {
	Banner  lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	Box      lipgloss.Style
	InfoBox  lipgloss.Style
	AboutBox lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Banner:  lipgloss.NewStyle().Bold(true).Foreground(ColorCyan),
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorCyan),
	Key:     lipgloss.NewStyle().Foreground(ColorYellow),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Error:   lipgloss.NewStyle().Foreground(ColorRed),

	Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorCyan).Padding(0, 1),
	InfoBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorGreen).Padding(0, 1),
	AboutBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorPurple).Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorRed).Padding(0, 1),
}

// strengthColors colours labels from red to green.
var strengthColors = map[strength.Strength]lipgloss.Color{
	strength.NoCharacters: ColorMuted,
	strength.VeryWeak:     ColorRed,
	strength.Weak:         lipgloss.Color("#FF875F"),
	strength.Medium:       ColorYellow,
	strength.Good:         lipgloss.Color("#AFD75F"),
	strength.Excellent:    ColorGreen,
}

// StrengthLabel renders label in the colour of s.
func StrengthLabel(s strength.Strength, label string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(strengthColors[s]).Render(label)
}

// Panel draws body in box with a title line.
func Panel(box lipgloss.Style, title, body string) string {
	return box.Render(Styles.Title.Render(title) + "\n\n" + strings.TrimRight(body, "\n"))
}

// KeyValues renders aligned "key: value" lines.
func KeyValues(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s %s\n", Styles.Key.Render(fmt.Sprintf("%-*s", width+1, p[0]+":")), p[1])
	}
	return b.String()
}

// PrintError writes err in a red box.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, Panel(Styles.ErrorBox, "Error", err.Error()))
}

// PrintSuccess writes msg in a green box.
func PrintSuccess(w io.Writer, title, msg string) {
	fmt.Fprintln(w, Panel(Styles.InfoBox, title, msg))
}
