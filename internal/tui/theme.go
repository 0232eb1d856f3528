// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import "github.com/charmbracelet/lipgloss"

// Nord palette
const (
	colorForeground = "#D8DEE9"
	colorComment    = "#4C566A"
	colorCyan       = "#88C0D0"
	colorGreen      = "#A3BE8C"
	colorRed        = "#BF616A"
	colorYellow     = "#EBCB8B"
	colorTeal       = "#8FBCBB"
	colorPanel      = "#2E3440"
)

type theme struct {
	root        lipgloss.Style
	header      lipgloss.Style
	title       lipgloss.Style
	panel       lipgloss.Style
	panelTitle  lipgloss.Style
	inputPanel  lipgloss.Style
	user        lipgloss.Style
	assistant   lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	helpText    lipgloss.Style
	selection   lipgloss.Style
	summary     lipgloss.Style
}

func newTheme() theme {
	fg := lipgloss.Color(colorForeground)
	muted := lipgloss.Color(colorComment)
	cyan := lipgloss.Color(colorCyan)

	return theme{
		root: lipgloss.NewStyle().
			Foreground(fg).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorTeal)).
			Bold(true),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGreen)).
			Bold(true),
		inputPanel: lipgloss.NewStyle().
			Background(lipgloss.Color(colorPanel)).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorGreen)).
			Padding(0, 1),
		user:        lipgloss.NewStyle().Foreground(cyan).Bold(true),
		assistant:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true),
		status:      lipgloss.NewStyle().Foreground(cyan),
		errorStatus: lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true),
		helpText:    lipgloss.NewStyle().Foreground(muted),
		selection:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		summary:     lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
