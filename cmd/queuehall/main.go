// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// queuehall is a terminal client for a citizen service-desk queue
// backend. It polls the backend's REST API and displays one queue
// pane per configured service, with a serve-next action to advance
// the focused queue.
//
// Modes of operation:
//
// TUI (default): full-screen queue board, one pane per service,
// refreshing every poll interval.
//
// Snapshot (--once): print the current queues as plain tables and
// exit. Follow (--watch) reprints the board every interval until
// interrupted. Take (--take) creates a ticket for a service and
// prints its number, for kiosk-style use.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/queuehall/queuehall/lib/board"
	"github.com/queuehall/queuehall/lib/clock"
	"github.com/queuehall/queuehall/lib/config"
	"github.com/queuehall/queuehall/lib/deskclient"
	"github.com/queuehall/queuehall/lib/queue"
	"github.com/queuehall/queuehall/lib/queueui"
	"github.com/queuehall/queuehall/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var baseURL string
	var serviceIDs []int
	var interval time.Duration
	var logOutput string
	var once bool
	var watch bool
	var takeService int
	var citizen string

	flagSet := pflag.NewFlagSet("queuehall", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config (default: $QUEUEHALL_CONFIG, else built-in defaults)")
	flagSet.StringVar(&baseURL, "base-url", "", "desk backend base URL (overrides config)")
	flagSet.IntSliceVar(&serviceIDs, "service", nil, "service id to display (repeatable; overrides config)")
	flagSet.DurationVar(&interval, "interval", 0, "poll interval (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolVar(&once, "once", false, "print the queue board once and exit")
	flagSet.BoolVar(&watch, "watch", false, "reprint the queue board every interval (no TUI)")
	flagSet.IntVar(&takeService, "take", 0, "take a new ticket for the given service id and exit")
	flagSet.StringVar(&citizen, "citizen", "", "citizen id for --take")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing, matching the other modes
	// of invocation.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("queuehall")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	modes := 0
	for _, enabled := range []bool{once, watch, takeService != 0} {
		if enabled {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("--once, --watch, and --take are mutually exclusive")
	}

	configuration, err := loadConfiguration(configPath)
	if err != nil {
		return err
	}
	applyOverrides(&configuration, baseURL, serviceIDs, interval)
	if err := configuration.Validate(); err != nil {
		return err
	}
	if logOutput != "" {
		configuration.LogFile = logOutput
	}

	client, err := deskclient.NewClient(deskclient.Config{
		BaseURL:    configuration.BaseURL,
		HTTPClient: httpClientFor(&configuration),
		Logger:     slog.Default(),
	})
	if err != nil {
		return err
	}

	switch {
	case takeService != 0:
		return runTake(client, takeService, citizen)
	case once:
		return runOnce(client, &configuration)
	case watch:
		return runWatch(client, &configuration)
	default:
		return runTUI(client, &configuration)
	}
}

// loadConfiguration resolves the config source: an explicit --config
// path wins, then $QUEUEHALL_CONFIG, then built-in defaults.
func loadConfiguration(configPath string) (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// applyOverrides folds command-line overrides into the configuration.
func applyOverrides(configuration *config.Config, baseURL string, serviceIDs []int, interval time.Duration) {
	if baseURL != "" {
		configuration.BaseURL = baseURL
	}
	if interval > 0 {
		configuration.PollInterval = interval.String()
	}
	if len(serviceIDs) > 0 {
		services := make([]config.ServiceConfig, 0, len(serviceIDs))
		for _, id := range serviceIDs {
			services = append(services, config.ServiceConfig{
				ID:   id,
				Name: configuration.ServiceName(id),
			})
		}
		configuration.Services = services
	}
}

// httpClientFor builds the HTTP client, applying the configured
// request timeout when one is set. No timeout is the default,
// matching the backend contract as originally consumed.
func httpClientFor(configuration *config.Config) *http.Client {
	if timeout := configuration.Timeout(); timeout > 0 {
		return &http.Client{Timeout: timeout}
	}
	return http.DefaultClient
}

// runTake creates one ticket and prints its assigned number.
func runTake(client *deskclient.Client, serviceID int, citizen string) error {
	if citizen == "" {
		return fmt.Errorf("--take requires --citizen")
	}

	ctx, cancel := signalContext()
	defer cancel()

	ticket, err := client.CreateTicket(ctx, serviceID, queue.CitizenID(citizen))
	if err != nil {
		return err
	}
	fmt.Printf("Ticket #%d created for service %d\n", ticket.Number, serviceID)
	return nil
}

// runOnce prints the board a single time.
func runOnce(client *deskclient.Client, configuration *config.Config) error {
	ctx, cancel := signalContext()
	defer cancel()

	logger := stderrLogger()
	return board.New(client, boardServices(configuration), logger).Render(ctx, os.Stdout)
}

// runWatch reprints the board every poll interval until interrupted.
func runWatch(client *deskclient.Client, configuration *config.Config) error {
	ctx, cancel := signalContext()
	defer cancel()

	logger := stderrLogger()
	err := board.New(client, boardServices(configuration), logger).
		Follow(ctx, clock.Real(), configuration.Interval(), os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runTUI launches the interactive queue board. Log records go to the
// configured log file (the alt screen owns stderr); with no file
// configured they are discarded.
func runTUI(client *deskclient.Client, configuration *config.Config) error {
	logger, cleanup, err := tuiLogger(configuration.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	services := make([]queueui.Service, 0, len(configuration.Services))
	for _, service := range configuration.Services {
		services = append(services, queueui.Service{
			ID:   service.ID,
			Name: configuration.ServiceName(service.ID),
		})
	}

	model := queueui.NewModel(services, client, configuration.Interval(), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// tuiLogger opens the JSONL log sink for TUI mode. Returns a no-op
// cleanup when logging is disabled.
func tuiLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { file.Close() }, nil
}

// stderrLogger is the text logger for non-TUI modes.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// boardServices maps the configured services into board form.
func boardServices(configuration *config.Config) []board.Service {
	services := make([]board.Service, 0, len(configuration.Services))
	for _, service := range configuration.Services {
		services = append(services, board.Service{
			ID:   service.ID,
			Name: configuration.ServiceName(service.ID),
		})
	}
	return services
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Queuehall — terminal queue board for a citizen service desk.

By default, opens a full-screen board with one pane per configured
service, each polling the desk backend and offering a serve-next
action. Configuration comes from --config, $QUEUEHALL_CONFIG, or
built-in development defaults (local backend, services 1 and 2).

Usage:
  queuehall [flags]

Examples:
  # Open the board with default configuration
  queuehall

  # Watch services 3 and 4 against a staging backend
  queuehall --base-url https://desk.staging.example/api --service 3 --service 4

  # Print the current queues and exit
  queuehall --once

  # Take a ticket for service 1
  queuehall --take 1 --citizen C42

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
