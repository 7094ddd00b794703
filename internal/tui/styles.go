package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/imgrooty/roi-calculator/internal/website"
)

// Styles are the lipgloss styles of one skin.
type Styles struct {
	Brand    lipgloss.Style
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Current  lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Card     lipgloss.Style
	Help     lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
}

// NewStyles derives terminal styles from a web skin.
func NewStyles(t website.Theme) Styles {
	c := func(key string) lipgloss.Color { return lipgloss.Color(t.Colors[key]) }

	s := Styles{
		Brand:    lipgloss.NewStyle().Bold(true).Foreground(c("primary")),
		Heading:  lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(c("textDim")),
		Muted:    lipgloss.NewStyle().Foreground(c("textDim")),
		Error:    lipgloss.NewStyle().Foreground(c("danger")),
		Success:  lipgloss.NewStyle().Foreground(c("success")),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(c("primary")),
		Done:     lipgloss.NewStyle().Foreground(c("success")),
		Pending:  lipgloss.NewStyle().Foreground(c("textDim")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Positive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Chart.Favorable)),
		Negative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Chart.Unfavorable)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("primary")).
			Padding(1, 2),
	}
	if t.Bracketed {
		s.Card = s.Card.Border(lipgloss.NormalBorder())
	}
	return s
}
