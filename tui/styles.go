package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jonwraymond/sitesearch/widget"
)

// Palette colors.
var (
	navy  = lipgloss.Color("#101F38")
	lime  = lipgloss.Color("#8BC34A")
	paper = lipgloss.Color("#f4f5f6")
	ink   = lipgloss.Color("#f2f2f2")
	slate = lipgloss.Color("#6b7280")
	night = lipgloss.Color("#141d2b")
)

// Styles holds the overlay styles for one appearance.
type Styles struct {
	Frame    lipgloss.Style
	Prompt   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Category lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}

// StylesFor returns the styles for a.
func StylesFor(a widget.Appearance) Styles {
	fg, bg, accent := navy, paper, navy
	if a == widget.Dark {
		fg, bg, accent = ink, night, lime
	}
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		Prompt:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Title:    lipgloss.NewStyle().Foreground(fg),
		Selected: lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true),
		Category: lipgloss.NewStyle().Foreground(slate).Italic(true),
		Muted:    lipgloss.NewStyle().Foreground(slate),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}
