package reply

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	mention    lipgloss.Style
	text       lipgloss.Style
	fence      lipgloss.Style
	code       lipgloss.Style
	status     lipgloss.Style
	attachment lipgloss.Style
	variant    lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	empty      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		mention:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		text:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		fence:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		code:       lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		status:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		attachment: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		variant:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
	}
}
