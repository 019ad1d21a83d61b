// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations queuehall schedules work with.
// Production code injects Real(); tests inject Fake() and advance it
// deterministically.
//
// Anything that would call time.Now, time.After, time.NewTicker, or
// time.Sleep directly should take a Clock instead so the refresh
// cadence can be driven from tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d has elapsed. If d <= 0 the channel receives
	// immediately.
	After(d time.Duration) <-chan time.Time

	// NewTicker returns a Ticker delivering ticks on its C channel
	// every d. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker

	// Sleep pauses the calling goroutine for at least d.
	Sleep(d time.Duration)
}

// Ticker wraps a periodic timer. Read ticks from C and call Stop when
// done. C has capacity 1, matching time.Ticker: if the consumer falls
// behind, ticks are dropped rather than queued.
type Ticker struct {
	// C delivers ticks.
	C <-chan time.Time

	stopFunc  func()
	resetFunc func(time.Duration)
}

// Stop turns the ticker off. No ticks are sent on C after Stop
// returns. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }

// Reset changes the interval and restarts the tick cycle; the next
// tick arrives after the new duration elapses.
func (t *Ticker) Reset(d time.Duration) { t.resetFunc(d) }
