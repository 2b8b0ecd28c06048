package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ███████████   ███████████ ███████████ ██████████
░░███░░░░░███ ░░███░░░░░░█░█░░░███░░░█░░███░░░░░█
 ░███    ░███  ░███   █ ░ ░   ░███  ░  ░███  █ ░
 ░██████████   ░███████       ░███     ░██████
 ░███░░░░░███  ░███░░░█       ░███     ░███░░█
 ░███    ░███  ░███  ░        ░███     ░███ ░   █
 ███████████   █████          █████    ██████████
░░░░░░░░░░░   ░░░░░          ░░░░░    ░░░░░░░░░░`

// Tagline is shown under the banner.
const Tagline = "Brute Force Time Estimator - Developed by fx-xf"

// Banner renders the ASCII art banner and tagline centred in width columns.
func Banner(width int) string {
	art := Styles.Banner.Render(bannerArt)
	tag := Styles.Success.Render(Tagline)
	block := lipgloss.JoinVertical(lipgloss.Center, art, "", tag)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// About renders the about panel.
func About() string {
	body := KeyValues([2]string{"GitHub", "https://github.com/fx-xf"}) + "\n" +
		"This password strength analyzer evaluates password complexity\n" +
		"and generates secure passwords using machine learning techniques."
	return Panel(Styles.AboutBox, "About Developer", body)
}

// PrintBanner writes the banner to w.
func PrintBanner(w io.Writer, width int) {
	fmt.Fprintln(w, Banner(width))
	fmt.Fprintln(w)
}
