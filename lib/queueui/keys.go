// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the queue board.
type KeyMap struct {
	// Focus switching between service panes.
	Left  key.Binding
	Right key.Binding

	// ServeNext advances the focused service's queue.
	ServeNext key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style movement
// (h/l) alongside the arrow keys and tab.
var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left", "shift+tab"),
		key.WithHelp("h/←", "previous queue"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right", "tab"),
		key.WithHelp("l/→", "next queue"),
	),
	ServeNext: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "serve next"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
