package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	docStyle      lipgloss.Style
	titleStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	cardStyle     lipgloss.Style
	cardLabel     lipgloss.Style
	gainStyle     lipgloss.Style
	lossStyle     lipgloss.Style
	mutedStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	sidebarStyle  lipgloss.Style
	tokenStyle    lipgloss.Style
}

func createStyles(theme Theme) styles {
	return styles{
		docStyle: lipgloss.NewStyle().Margin(1, standardMargin),
		titleStyle: lipgloss.NewStyle().Foreground(
			lipgloss.AdaptiveColor{Light: "#000000", Dark: string(theme.Primary)},
		).Bold(true),
		errorStyle: lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		cardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, standardMargin),
		cardLabel:     lipgloss.NewStyle().Foreground(theme.SecondaryText).Bold(true),
		gainStyle:     lipgloss.NewStyle().Foreground(theme.Gain),
		lossStyle:     lipgloss.NewStyle().Foreground(theme.Loss),
		mutedStyle:    lipgloss.NewStyle().Foreground(theme.Muted),
		selectedStyle: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		sidebarStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, standardMargin),
		tokenStyle: lipgloss.NewStyle().Foreground(theme.SecondaryText),
	}
}

func createHelpModel(theme Theme) help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = " + "
	helpModel.Styles = help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(theme.SecondaryText),
		ShortKey:       lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		ShortSeparator: lipgloss.NewStyle().Foreground(theme.SecondaryText),
		FullKey:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(theme.Text),
		FullSeparator:  lipgloss.NewStyle().Foreground(theme.SecondaryText),
	}
	return helpModel
}
