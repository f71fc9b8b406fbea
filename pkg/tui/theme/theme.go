package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the command center.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Rail   RailTheme
	Modal  ModalTheme
}

// FooterTheme groups styles used by the bottom status/prompt bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// PanelTheme styles the task panel.
type PanelTheme struct {
	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Selected     lipgloss.Style
	Done         lipgloss.Style
	Meta         lipgloss.Style
	Overdue      lipgloss.Style
	Focus        lipgloss.Style
}

// RailTheme styles the notification rail.
type RailTheme struct {
	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Header       lipgloss.Style
	Stat         lipgloss.Style
	Focus        lipgloss.Style
	Info         lipgloss.Style
	Success      lipgloss.Style
	Warn         lipgloss.Style
	Error        lipgloss.Style
	Timestamp    lipgloss.Style
	Source       lipgloss.Style
	Selected     lipgloss.Style
	Read         lipgloss.Style
}

// ModalTheme styles centered modal overlays (help, confirm).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	focused := border.BorderForeground(lipgloss.Color("212"))
	selected := lipgloss.NewStyle().Reverse(true)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame:        border,
			FrameFocused: focused,
			Title:        lipgloss.NewStyle().Bold(true),
			Body:         lipgloss.NewStyle(),
			Selected:     selected,
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Meta:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Overdue:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Focus:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Rail: RailTheme{
			Frame:        border,
			FrameFocused: focused,
			Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Stat:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Focus:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Info:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787")),
			Warn:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Timestamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Source:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Selected:     selected,
			Read:         lipgloss.NewStyle().Faint(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
