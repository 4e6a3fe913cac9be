package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the dashboard.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Available lipgloss.Style
	Assigned  lipgloss.Style
	Forming   lipgloss.Style
	Active    lipgloss.Style
	Paused    lipgloss.Style
	Terminal  lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
}

// DefaultStyles returns the standard dashboard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Available: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Assigned:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Forming:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Active:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Terminal:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
	}
}
