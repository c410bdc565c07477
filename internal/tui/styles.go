package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fittrack/internal/constants"
)

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	muted       lipgloss.Style
	danger      lipgloss.Style
	warning     lipgloss.Style
	success     lipgloss.Style
	doc         lipgloss.Style
}

func newStyles(theme string) styles {
	accent, background, muted := lipgloss.Color("205"), lipgloss.Color("236"), lipgloss.Color("240")
	if theme == constants.ThemeLight {
		accent, background, muted = lipgloss.Color("125"), lipgloss.Color("254"), lipgloss.Color("245")
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(background).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(muted),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
