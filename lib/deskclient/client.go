// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package deskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/queuehall/queuehall/lib/queue"
)

// defaultBaseURL is where the desk backend's development server
// listens. Overridable via Config for any other deployment.
const defaultBaseURL = "http://127.0.0.1:8000/api"

// maxResponseBytes caps how much of a response body is read. Queue
// snapshots are small; anything larger is a misbehaving backend.
const maxResponseBytes = 4 << 20

// Config holds configuration for creating a desk API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to the
	// local development backend.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient. The default carries no timeout, matching
	// the backend contract; set one here (or cancel the context) to
	// bound a hung request.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the service-desk ticket API. All
// methods take a context and return explicit errors; non-2xx
// responses come back as *APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a desk API client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("deskclient: invalid base URL %q: %w", config.BaseURL, err)
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("deskclient: base URL must be http or https (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Tickets fetches the full queue snapshot for one service, ordered by
// ticket number ascending. The ordering is requested from the backend
// and trusted, not re-sorted client-side.
func (client *Client) Tickets(ctx context.Context, serviceID int) ([]queue.Ticket, error) {
	query := url.Values{}
	query.Set("service", strconv.Itoa(serviceID))
	query.Set("ordering", "number")

	var tickets []queue.Ticket
	status, err := client.do(ctx, http.MethodGet, "/tickets/?"+query.Encode(), nil, &tickets)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return tickets, nil
}

// NextTicket returns the next pending ticket for a service without
// advancing the queue. Returns (nil, nil) when the queue is empty
// (the backend answers 204 No Content).
func (client *Client) NextTicket(ctx context.Context, serviceID int) (*queue.Ticket, error) {
	query := url.Values{}
	query.Set("service", strconv.Itoa(serviceID))

	var ticket queue.Ticket
	status, err := client.do(ctx, http.MethodGet, "/tickets/next/?"+query.Encode(), nil, &ticket)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &ticket, nil
}

// ServeNext advances a service's queue by one: the backend marks the
// next pending ticket as serving and returns it. Returns (nil, nil)
// when the queue was already empty (204 No Content). Callers that
// only care about the completion signal may discard the ticket.
func (client *Client) ServeNext(ctx context.Context, serviceID int) (*queue.Ticket, error) {
	body := map[string]int{"service": serviceID}

	var ticket queue.Ticket
	status, err := client.do(ctx, http.MethodPost, "/tickets/serve-next/", body, &ticket)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &ticket, nil
}

// CreateTicket takes a new ticket for a service on behalf of a
// citizen. The backend assigns the sequential number and returns the
// created record.
func (client *Client) CreateTicket(ctx context.Context, serviceID int, citizen queue.CitizenID) (*queue.Ticket, error) {
	body := map[string]any{
		"service": serviceID,
		"citizen": citizen,
	}

	var ticket queue.Ticket
	if _, err := client.do(ctx, http.MethodPost, "/tickets/", body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// do executes one API request. The path is relative to the base URL
// and already encoded. A non-nil requestBody is JSON-encoded; a
// non-nil result is JSON-decoded from the response body unless the
// backend answered 204 No Content. Returns the response status code
// so callers can distinguish empty-queue responses.
//
// Non-2xx responses become an *APIError carrying the backend's
// error message when one was provided.
func (client *Client) do(ctx context.Context, method, path string, requestBody, result any) (int, error) {
	requestURL := client.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return 0, fmt.Errorf("deskclient: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("deskclient: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return 0, fmt.Errorf("deskclient: %s %s: %w", method, requestURL, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return response.StatusCode, fmt.Errorf("deskclient: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response.StatusCode, parseAPIError(response.StatusCode, body)
	}

	if result != nil && response.StatusCode != http.StatusNoContent && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return response.StatusCode, fmt.Errorf("deskclient: decoding %s %s response: %w", method, path, err)
		}
	}

	return response.StatusCode, nil
}
