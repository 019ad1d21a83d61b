// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package deskclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the desk backend. The backend
// reports failures as {"error": "..."} JSON bodies; when the body is
// not in that shape (proxies, crashes), the raw text is kept instead.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the backend's error message, or a snippet of the
	// raw body when no structured message was present.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("deskclient: backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("deskclient: backend returned %d: %s", e.StatusCode, e.Message)
}

// errorBody is the backend's error envelope. Validation failures use
// "error"; a few endpoints use "message" for informational bodies.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// maxRawErrorLength bounds how much unstructured body text ends up in
// an error message.
const maxRawErrorLength = 200

// parseAPIError builds an *APIError from a response body.
func parseAPIError(statusCode int, body []byte) *APIError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		message := parsed.Error
		if message == "" {
			message = parsed.Message
		}
		if message != "" {
			return &APIError{StatusCode: statusCode, Message: message}
		}
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxRawErrorLength {
		raw = raw[:maxRawErrorLength] + "…"
	}
	return &APIError{StatusCode: statusCode, Message: raw}
}
