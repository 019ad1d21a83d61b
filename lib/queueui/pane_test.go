// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/queuehall/queuehall/lib/queue"
)

// fakeSource is an in-memory Source recording every call.
type fakeSource struct {
	mu       sync.Mutex
	tickets  map[int][]queue.Ticket
	fetchErr error

	fetchCalls []int
	serveCalls []int
}

func newFakeSource() *fakeSource {
	return &fakeSource{tickets: make(map[int][]queue.Ticket)}
}

func (source *fakeSource) Tickets(_ context.Context, serviceID int) ([]queue.Ticket, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.fetchCalls = append(source.fetchCalls, serviceID)
	if source.fetchErr != nil {
		return nil, source.fetchErr
	}
	return source.tickets[serviceID], nil
}

func (source *fakeSource) ServeNext(_ context.Context, serviceID int) (*queue.Ticket, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.serveCalls = append(source.serveCalls, serviceID)
	if source.fetchErr != nil {
		return nil, source.fetchErr
	}
	return nil, nil
}

func (source *fakeSource) fetchCount() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return len(source.fetchCalls)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// drain executes a command tree synchronously and returns the
// messages it produces, in order.
func drain(command tea.Cmd) []tea.Msg {
	if command == nil {
		return nil
	}
	message := command()
	if batch, ok := message.(tea.BatchMsg); ok {
		var messages []tea.Msg
		for _, child := range batch {
			messages = append(messages, drain(child)...)
		}
		return messages
	}
	if message == nil {
		return nil
	}
	return []tea.Msg{message}
}

func TestPaneInitFetchesImmediately(t *testing.T) {
	source := newFakeSource()
	source.tickets[4] = []queue.Ticket{{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"}}

	pane := NewPane(4, "Permits", source, time.Millisecond, DefaultTheme, testLogger())
	messages := drain(pane.Init())

	// Exactly one fetch, scoped to this pane's service, before any
	// timer-driven fetch.
	if got := source.fetchCalls; len(got) != 1 || got[0] != 4 {
		t.Fatalf("fetch calls after Init = %v, want [4]", got)
	}

	var sawSnapshot bool
	for _, message := range messages {
		if snapshot, ok := message.(snapshotMsg); ok {
			if sawSnapshot {
				t.Fatal("Init produced more than one snapshot")
			}
			sawSnapshot = true
			if snapshot.serviceID != 4 || snapshot.seq != 1 {
				t.Errorf("snapshot = service %d seq %d, want service 4 seq 1", snapshot.serviceID, snapshot.seq)
			}
		}
	}
	if !sawSnapshot {
		t.Fatal("Init produced no snapshot")
	}
}

func TestPaneRendersRowPerTicket(t *testing.T) {
	pane := NewPane(1, "Registrations", newFakeSource(), time.Second, DefaultTheme, testLogger())

	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 1, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"},
		{ID: 2, Number: 2, Status: queue.StatusServing, Citizen: "C2"},
		{ID: 3, Number: 3, Status: queue.StatusCompleted, Citizen: "C3"},
	}})

	view := pane.View(false)
	for number := 1; number <= 3; number++ {
		row := fmt.Sprintf("Ticket #%d", number)
		if !strings.Contains(view, row) {
			t.Errorf("view missing row %q", row)
		}
	}
	if strings.Contains(view, "No tickets in queue") {
		t.Error("placeholder shown alongside ticket rows")
	}
}

func TestPanePlaceholderWhenEmpty(t *testing.T) {
	pane := NewPane(1, "Registrations", newFakeSource(), time.Second, DefaultTheme, testLogger())

	// Before the first fetch resolves: loading, not the placeholder.
	if view := pane.View(false); !strings.Contains(view, "Loading") {
		t.Errorf("pre-fetch view should show loading, got %q", view)
	}

	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 1, tickets: nil})
	if view := pane.View(false); !strings.Contains(view, "No tickets in queue") {
		t.Errorf("empty queue should render the placeholder row, got %q", view)
	}
}

func TestPaneRowText(t *testing.T) {
	pane := NewPane(1, "Registrations", newFakeSource(), time.Second, DefaultTheme, testLogger())

	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 1, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"},
	}})
	if !strings.Contains(pane.View(false), "Ticket #1 - waiting - Citizen ID: C1") {
		t.Error("row text does not match display format")
	}

	// After serve-next and refresh, the same row re-renders serving.
	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 2, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusServing, Citizen: "C1"},
	}})
	if !strings.Contains(pane.View(false), "Ticket #1 - serving - Citizen ID: C1") {
		t.Error("row text after refresh does not match display format")
	}
}

func TestServeNextDisablesControlUntilRefreshSettles(t *testing.T) {
	source := newFakeSource()
	pane := NewPane(2, "Permits", source, time.Second, DefaultTheme, testLogger())

	serveCommand := pane.ServeNext()
	if serveCommand == nil {
		t.Fatal("ServeNext returned no command")
	}
	if !pane.Serving() {
		t.Fatal("control should disable the moment serve-next is triggered")
	}

	// A second trigger while in flight is a no-op.
	if pane.ServeNext() != nil {
		t.Error("duplicate serve-next should be rejected while in flight")
	}

	// The write settles: still disabled until the refresh resolves.
	serveResult := serveCommand().(serveResultMsg)
	refreshCommand := pane.Update(serveResult)
	if refreshCommand == nil {
		t.Fatal("serve completion should trigger a refresh fetch")
	}
	if !pane.Serving() {
		t.Fatal("control should stay disabled until the refresh settles")
	}
	if got := source.serveCalls; len(got) != 1 || got[0] != 2 {
		t.Errorf("serve calls = %v, want [2]", got)
	}

	// The refresh settles: re-enabled.
	refreshSnapshot := drain(refreshCommand)[0].(snapshotMsg)
	pane.Update(refreshSnapshot)
	if pane.Serving() {
		t.Error("control should re-enable after the refresh settles")
	}
}

func TestServeNextReenablesAfterFailedRefresh(t *testing.T) {
	source := newFakeSource()
	pane := NewPane(2, "Permits", source, time.Second, DefaultTheme, testLogger())

	serveResult := pane.ServeNext()().(serveResultMsg)
	source.mu.Lock()
	source.fetchErr = fmt.Errorf("backend down")
	source.mu.Unlock()

	refreshCommand := pane.Update(serveResult)
	refreshSnapshot := drain(refreshCommand)[0].(snapshotMsg)
	if refreshSnapshot.err == nil {
		t.Fatal("test setup: refresh should have failed")
	}

	pane.Update(refreshSnapshot)
	if pane.Serving() {
		t.Error("control should re-enable even when the refresh failed")
	}
}

func TestFetchFailureKeepsStaleSnapshot(t *testing.T) {
	pane := NewPane(1, "Registrations", newFakeSource(), time.Second, DefaultTheme, testLogger())

	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 1, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"},
	}})
	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 2, err: fmt.Errorf("connection refused")})

	if !strings.Contains(pane.View(false), "Ticket #1") {
		t.Error("failed fetch should leave the previous snapshot displayed")
	}
}

func TestStaleSnapshotDiscarded(t *testing.T) {
	pane := NewPane(1, "Registrations", newFakeSource(), time.Second, DefaultTheme, testLogger())

	// The newer fetch resolves first; the older one loses the race
	// and must not overwrite it.
	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 2, tickets: []queue.Ticket{
		{ID: 2, Number: 2, Status: queue.StatusServing, Citizen: "C2"},
	}})
	pane.applySnapshot(snapshotMsg{serviceID: 1, seq: 1, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"},
	}})

	view := pane.View(false)
	if !strings.Contains(view, "Ticket #2") {
		t.Error("newer snapshot should survive")
	}
	if strings.Contains(view, "Ticket #1") {
		t.Error("late-resolving older snapshot should be discarded")
	}
}

func TestStoppedPaneSchedulesNoFurtherFetches(t *testing.T) {
	source := newFakeSource()
	pane := NewPane(3, "Licenses", source, time.Millisecond, DefaultTheme, testLogger())
	drain(pane.Init())
	before := source.fetchCount()

	pane.Stop()
	if command := pane.Update(pollTickMsg{serviceID: 3}); command != nil {
		t.Error("stopped pane should not schedule work on a tick")
	}
	if source.fetchCount() != before {
		t.Error("stopped pane issued a fetch")
	}

	// A late response for an in-flight request must be dropped
	// without being applied.
	pane.Update(snapshotMsg{serviceID: 3, seq: 9, tickets: []queue.Ticket{
		{ID: 1, Number: 1, Status: queue.StatusWaiting, Citizen: "C1"},
	}})
	if strings.Contains(pane.View(false), "Ticket #1") {
		t.Error("late response applied to a stopped pane")
	}
}

func TestPollTickFetchesAndReschedules(t *testing.T) {
	source := newFakeSource()
	pane := NewPane(5, "Passports", source, time.Millisecond, DefaultTheme, testLogger())
	drain(pane.Init())

	messages := drain(pane.Update(pollTickMsg{serviceID: 5}))

	if got := source.fetchCount(); got != 2 {
		t.Errorf("fetch count after one tick = %d, want 2", got)
	}
	var sawTick bool
	for _, message := range messages {
		if _, ok := message.(pollTickMsg); ok {
			sawTick = true
		}
	}
	if !sawTick {
		t.Error("tick handler should arm the next tick")
	}
}
