package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Calendar CalendarTheme
	Status   StatusTheme
	Footer   FooterTheme
}

// CalendarTheme styles the month grid.
type CalendarTheme struct {
	Title   lipgloss.Style
	Weekday lipgloss.Style
	Day     lipgloss.Style
	Today   lipgloss.Style
	Blank   lipgloss.Style
	Cell    lipgloss.Style
}

// StatusTheme styles cell content by load or availability state.
type StatusTheme struct {
	Pending     lipgloss.Style
	Loading     lipgloss.Style
	Available   lipgloss.Style
	Unavailable lipgloss.Style
	Error       lipgloss.Style
}

// FooterTheme groups styles used by the notice and help lines.
type FooterTheme struct {
	Help        lipgloss.Style
	Notice      lipgloss.Style
	NoticeError lipgloss.Style
	Mode        lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Calendar: CalendarTheme{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Weekday: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Day:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			Today:   lipgloss.NewStyle().Underline(true),
			Blank:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Cell:    lipgloss.NewStyle().PaddingRight(1),
		},
		Status: StatusTheme{
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Italic(true),
			Available:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			Unavailable: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
		Footer: FooterTheme{
			Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			NoticeError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Mode:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
	}
}
