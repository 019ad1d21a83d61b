// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Service names one queue to display: the backend's integer service
// ID plus a human-readable pane title. The set of services is fixed
// at startup; there is no dynamic discovery.
type Service struct {
	ID   int
	Name string
}

// Model is the top-level bubbletea model: one pane per configured
// service, side by side, with keyboard focus deciding which pane the
// serve-next key acts on. Panes hold no shared state; every message
// carries a service ID and is routed to exactly one pane.
type Model struct {
	panes []Pane
	focus int
	keys  KeyMap
	theme Theme

	width  int
	height int
	ready  bool
}

// NewModel creates the board with one pane per service, in the given
// order. All panes share the source and poll interval but nothing
// else.
func NewModel(services []Service, source Source, interval time.Duration, logger *slog.Logger) Model {
	model := Model{
		keys:  DefaultKeyMap,
		theme: DefaultTheme,
	}
	for _, service := range services {
		model.panes = append(model.panes,
			NewPane(service.ID, service.Name, source, interval, model.theme, logger))
	}
	return model
}

// Init starts every pane: each issues its immediate first fetch and
// arms its own refresh timer.
func (model Model) Init() tea.Cmd {
	var commands []tea.Cmd
	for index := range model.panes {
		commands = append(commands, model.panes[index].Init())
	}
	return tea.Batch(commands...)
}

// Update implements tea.Model. Keyboard input acts on the focused
// pane; data messages are routed by service ID so a fetch for one
// service can never alter another service's snapshot.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			for index := range model.panes {
				model.panes[index].Stop()
			}
			return model, tea.Quit

		case key.Matches(message, model.keys.Left):
			if model.focus > 0 {
				model.focus--
			}

		case key.Matches(message, model.keys.Right):
			if model.focus < len(model.panes)-1 {
				model.focus++
			}

		case key.Matches(message, model.keys.ServeNext):
			if len(model.panes) > 0 {
				return model, model.panes[model.focus].ServeNext()
			}
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.layoutPanes()

	case pollTickMsg:
		return model, model.routeToPane(message.serviceID, message)

	case snapshotMsg:
		return model, model.routeToPane(message.serviceID, message)

	case serveResultMsg:
		return model, model.routeToPane(message.serviceID, message)
	}
	return model, nil
}

// routeToPane delivers a message to the pane owning the service ID.
// Messages for unknown services (a pane removed mid-flight) are
// dropped.
func (model *Model) routeToPane(serviceID int, message tea.Msg) tea.Cmd {
	for index := range model.panes {
		if model.panes[index].ServiceID() == serviceID {
			return model.panes[index].Update(message)
		}
	}
	return nil
}

// layoutPanes divides the window width evenly among the panes. The
// bottom row is reserved for the help line.
func (model *Model) layoutPanes() {
	if len(model.panes) == 0 {
		return
	}
	paneWidth := model.width / len(model.panes)
	paneHeight := model.height - 2
	for index := range model.panes {
		model.panes[index].SetSize(paneWidth, paneHeight)
	}
}

// View renders the panes side by side above a help line.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	views := make([]string, len(model.panes))
	for index := range model.panes {
		views[index] = model.panes[index].View(index == model.focus)
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, views...)

	help := lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("h/l focus · s serve next · q quit")

	return board + "\n" + help
}
