// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/queuehall/queuehall/lib/clock"
	"github.com/queuehall/queuehall/lib/queue"
)

// Fetcher is the read-only slice of the desk API the board needs.
type Fetcher interface {
	Tickets(ctx context.Context, serviceID int) ([]queue.Ticket, error)
}

// Service names one queue to include in the board.
type Service struct {
	ID   int
	Name string
}

// Board renders service queues as plain-text tables for scripting
// and quick checks (queuehall --once / --watch).
type Board struct {
	fetcher  Fetcher
	services []Service
	logger   *slog.Logger
}

// New creates a Board over the given services.
func New(fetcher Fetcher, services []Service, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{fetcher: fetcher, services: services, logger: logger}
}

// Render fetches every service's queue once and writes the tables to
// out. A failed fetch renders an empty section for that service and
// is logged; other services are unaffected. Returns the first fetch
// error for exit status purposes.
func (board *Board) Render(ctx context.Context, out io.Writer) error {
	var firstErr error
	for _, service := range board.services {
		tickets, err := board.fetcher.Tickets(ctx, service.ID)
		if err != nil {
			board.logger.Warn("queue fetch failed",
				"service", service.ID,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		board.renderService(out, service, tickets)
	}
	return firstErr
}

// renderService writes one service's queue table.
func (board *Board) renderService(out io.Writer, service Service, tickets []queue.Ticket) {
	fmt.Fprintf(out, "%s (service %d)\n", service.Name, service.ID)

	if len(tickets) == 0 {
		fmt.Fprintln(out, "  no tickets in queue")
		fmt.Fprintln(out)
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"NUMBER", "STATUS", "CITIZEN"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, ticket := range tickets {
		table.Append([]string{
			fmt.Sprintf("#%d", ticket.Number),
			string(ticket.Status),
			string(ticket.Citizen),
		})
	}
	table.Render()
	fmt.Fprintln(out)
}

// Follow renders the board immediately, then again every interval,
// until the context is canceled. The ticker is released on return;
// cancellation mid-interval does not produce a final render.
func (board *Board) Follow(ctx context.Context, clk clock.Clock, interval time.Duration, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// One immediate render before any timer-driven one. Fetch
	// failures are logged inside Render; the follow loop keeps
	// going, matching the interactive board's stale-data policy.
	_ = board.Render(ctx, out)

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = board.Render(ctx, out)
		}
	}
}
