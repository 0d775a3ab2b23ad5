package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chess10kp/whereami/internal/config"
)

// Styles are built once from the [colors] config section.
type Styles struct {
	Text          lipgloss.Style
	Selected      lipgloss.Style
	Match         lipgloss.Style
	SelectedMatch lipgloss.Style
	Workspace     lipgloss.Style
	Search        lipgloss.Style
	Dim           lipgloss.Style
	Error         lipgloss.Style
	status        map[string]lipgloss.Style
}

func NewStyles(c config.ColorsConfig) Styles {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text))
	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.SelectedText)).
		Background(lipgloss.Color(c.SelectedBackground)).
		Bold(true)
	match := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Match)).Bold(true)

	return Styles{
		Text:          text,
		Selected:      selected,
		Match:         match,
		SelectedMatch: selected.Foreground(lipgloss.Color(c.Match)),
		Workspace:     text.Faint(true),
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.SearchBorder)).
			Padding(0, 1),
		Dim:   lipgloss.NewStyle().Faint(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Status.Fullscreen)),
		status: map[string]lipgloss.Style{
			"Fullscreen": lipgloss.NewStyle().Foreground(lipgloss.Color(c.Status.Fullscreen)),
			"Maximised":  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Status.Maximized)),
			"Float":      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Status.Floating)),
			"Tiled":      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Status.Tiled)),
		},
	}
}

// Status returns the style for a hypr.Client.Status value.
func (s Styles) Status(status string) lipgloss.Style {
	if st, ok := s.status[status]; ok {
		return st
	}
	return s.Text
}
