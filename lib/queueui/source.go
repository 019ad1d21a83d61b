// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"

	"github.com/queuehall/queuehall/lib/queue"
)

// Source abstracts ticket data access for the board. The desk API
// client satisfies it in production; tests use an in-memory fake.
// The board code is identical in both cases.
type Source interface {
	// Tickets returns the current queue snapshot for one service,
	// ordered by ticket number ascending.
	Tickets(ctx context.Context, serviceID int) ([]queue.Ticket, error)

	// ServeNext advances the service's queue by one ticket. The
	// returned ticket is the one now being served; it is nil when
	// the queue was already empty. The board discards it beyond the
	// completion signal and re-fetches instead.
	ServeNext(ctx context.Context, serviceID int) (*queue.Ticket, error)
}
