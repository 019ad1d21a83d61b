// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/queuehall/queuehall/lib/queue"
)

// Theme defines the color palette for the queue board. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// ServingText is the accent for tickets currently being served.
	ServingText lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusBorderColor lipgloss.Color
	HelpText         lipgloss.Color

	// ActionEnabled and ActionDisabled style the serve-next control.
	ActionEnabled  lipgloss.Color
	ActionDisabled lipgloss.Color
}

// RowStyle returns the style for a ticket row. Serving tickets are
// emphasized (bold, green); every other status renders identically,
// with no distinction between waiting and completed.
func (theme Theme) RowStyle(status queue.Status) lipgloss.Style {
	if status == queue.StatusServing {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.ServingText)
	}
	return lipgloss.NewStyle().Foreground(theme.NormalText)
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	ServingText: lipgloss.Color("114"), // green

	HeaderForeground: lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorderColor: lipgloss.Color("75"),
	HelpText:         lipgloss.Color("241"),

	ActionEnabled:  lipgloss.Color("220"),
	ActionDisabled: lipgloss.Color("240"),
}
