// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/queuehall/queuehall/lib/queue"
)

// DefaultPollInterval is how often a pane re-fetches its queue when
// the configuration does not say otherwise.
const DefaultPollInterval = 5 * time.Second

// pollTickMsg drives a pane's recurring refresh. Each pane schedules
// its own ticks, tagged with its service ID so the root model can
// route them.
type pollTickMsg struct {
	serviceID int
}

// snapshotMsg delivers the result of one queue fetch. The sequence
// number is assigned when the fetch is issued; responses arriving out
// of order are detected by comparing it against the last applied one.
type snapshotMsg struct {
	serviceID int
	seq       uint64
	tickets   []queue.Ticket
	err       error
}

// serveResultMsg delivers the completion of a serve-next write. The
// response contents are already discarded: the pane re-fetches the
// queue rather than trusting the write's return value.
type serveResultMsg struct {
	serviceID int
	err       error
}

// Pane displays the live queue for a single service and owns the
// serve-next action for it. Panes share nothing: each one polls its
// own endpoint and reacts only to messages tagged with its service ID.
type Pane struct {
	serviceID int
	name      string
	source    Source
	logger    *slog.Logger
	interval  time.Duration
	theme     Theme

	width  int
	height int

	// tickets is the displayed snapshot, replaced wholesale on every
	// applied fetch. loaded flips after the first successful fetch so
	// the empty placeholder is distinguishable from "not fetched yet".
	tickets []queue.Ticket
	loaded  bool

	// issuedSeq counts fetches issued; appliedSeq records the fetch
	// whose response is currently displayed. A response with a lower
	// sequence than appliedSeq lost the race to a newer one and is
	// discarded instead of overwriting fresher data.
	issuedSeq  uint64
	appliedSeq uint64

	// serving disables the serve-next control from the moment the
	// write is issued until the follow-up refresh settles. The
	// refresh's sequence is kept in serveRefreshSeq (0 when no
	// serve-next is in flight).
	serving         bool
	serveRefreshSeq uint64

	// stopped marks a torn-down pane. A stopped pane schedules no
	// further work and drops any late responses; in-flight requests
	// are not canceled and may still resolve after teardown.
	stopped bool
}

// NewPane creates a Pane for one service. The logger receives fetch
// and serve failures; they are never rendered in the pane itself.
func NewPane(serviceID int, name string, source Source, interval time.Duration, theme Theme, logger *slog.Logger) Pane {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Pane{
		serviceID: serviceID,
		name:      name,
		source:    source,
		logger:    logger,
		interval:  interval,
		theme:     theme,
	}
}

// Init issues the immediate first fetch and schedules the recurring
// refresh. Exactly one fetch happens before any timer-driven one.
func (pane *Pane) Init() tea.Cmd {
	return tea.Batch(pane.fetch(), pane.scheduleTick())
}

// ServiceID returns the service this pane displays.
func (pane *Pane) ServiceID() int { return pane.serviceID }

// Serving reports whether a serve-next action is in flight (the
// control is disabled exactly while this is true).
func (pane *Pane) Serving() bool { return pane.serving }

// Stop tears the pane down: no further fetches are scheduled and
// late responses are discarded. In-flight requests are left to
// resolve on their own.
func (pane *Pane) Stop() {
	pane.stopped = true
}

// SetSize sets the pane's render dimensions.
func (pane *Pane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
}

// fetch issues one snapshot request and returns the command that
// performs it. The sequence number is captured before the request
// starts so the response can be ordered against competing fetches.
//
// The request deliberately uses a background context: the source
// contract has no client-side timeout, and teardown does not cancel
// in-flight requests (stopped panes drop the response instead).
func (pane *Pane) fetch() tea.Cmd {
	pane.issuedSeq++
	seq := pane.issuedSeq
	serviceID := pane.serviceID
	source := pane.source
	return func() tea.Msg {
		tickets, err := source.Tickets(context.Background(), serviceID)
		return snapshotMsg{serviceID: serviceID, seq: seq, tickets: tickets, err: err}
	}
}

// scheduleTick arms the next refresh tick. The tick fires whether or
// not earlier requests are still outstanding, so overlapping fetches
// are possible; the sequence guard decides which response applies.
func (pane *Pane) scheduleTick() tea.Cmd {
	serviceID := pane.serviceID
	return tea.Tick(pane.interval, func(time.Time) tea.Msg {
		return pollTickMsg{serviceID: serviceID}
	})
}

// ServeNext triggers the serve-next action. The control is disabled
// immediately; it re-enables only after both the write and the
// follow-up refresh have settled, success or failure. Returns nil
// when an action is already in flight (duplicate submissions from
// this pane are impossible; other clients are not our problem).
func (pane *Pane) ServeNext() tea.Cmd {
	if pane.serving || pane.stopped {
		return nil
	}
	pane.serving = true
	serviceID := pane.serviceID
	source := pane.source
	return func() tea.Msg {
		_, err := source.ServeNext(context.Background(), serviceID)
		return serveResultMsg{serviceID: serviceID, err: err}
	}
}

// Update handles messages routed to this pane. The root model has
// already matched the message's service ID.
func (pane *Pane) Update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case pollTickMsg:
		if pane.stopped {
			return nil
		}
		return tea.Batch(pane.fetch(), pane.scheduleTick())

	case snapshotMsg:
		pane.applySnapshot(message)
		return nil

	case serveResultMsg:
		if message.err != nil {
			pane.logger.Warn("serve-next failed",
				"service", pane.serviceID,
				"error", message.err,
			)
		}
		if pane.stopped {
			pane.serving = false
			pane.serveRefreshSeq = 0
			return nil
		}
		// Refresh regardless of the write's outcome; the control
		// stays disabled until this fetch settles.
		refresh := pane.fetch()
		pane.serveRefreshSeq = pane.issuedSeq
		return refresh
	}
	return nil
}

// applySnapshot folds one fetch response into the pane. Failures keep
// the previous snapshot visible (stale-data policy, not recovery) and
// are logged only. Responses older than the displayed snapshot are
// discarded so a slow fetch cannot overwrite a newer one.
func (pane *Pane) applySnapshot(message snapshotMsg) {
	// The serve-next control re-enables once its refresh settles,
	// even when the refresh failed or lost the ordering race.
	if pane.serveRefreshSeq != 0 && message.seq >= pane.serveRefreshSeq {
		pane.serving = false
		pane.serveRefreshSeq = 0
	}

	if pane.stopped {
		return
	}

	if message.err != nil {
		pane.logger.Warn("queue fetch failed",
			"service", pane.serviceID,
			"error", message.err,
		)
		return
	}

	if message.seq < pane.appliedSeq {
		pane.logger.Debug("discarding stale queue snapshot",
			"service", pane.serviceID,
			"seq", message.seq,
			"applied", pane.appliedSeq,
		)
		return
	}

	pane.appliedSeq = message.seq
	pane.tickets = message.tickets
	pane.loaded = true
}

// View renders the pane: a title, one row per ticket (or a single
// placeholder row for an empty queue), and the serve-next control.
// The focused pane gets the accent border.
func (pane *Pane) View(focused bool) string {
	theme := pane.theme

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	title := titleStyle.Render(fmt.Sprintf("%s (service %d)", pane.name, pane.serviceID))

	var rows []string
	switch {
	case !pane.loaded:
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading…"))
	case len(pane.tickets) == 0:
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.FaintText).Render("No tickets in queue"))
	default:
		for _, ticket := range pane.tickets {
			rows = append(rows, pane.theme.RowStyle(ticket.Status).Render(ticket.Label()))
		}
	}

	actionColor := theme.ActionEnabled
	actionLabel := "[s] serve next"
	if pane.serving {
		actionColor = theme.ActionDisabled
		actionLabel = "[s] serving…"
	}
	action := lipgloss.NewStyle().Foreground(actionColor).Render(actionLabel)

	content := strings.Join(append([]string{title, ""}, append(rows, "", action)...), "\n")

	borderColor := theme.BorderColor
	if focused {
		borderColor = theme.FocusBorderColor
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if pane.width > 4 {
		frame = frame.Width(pane.width - 2)
	}
	if pane.height > 4 {
		frame = frame.Height(pane.height - 2)
	}
	return frame.Render(content)
}
