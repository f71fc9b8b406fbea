package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the contract shared by the panel and the rail.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
	Focus()
	Blur()
}
