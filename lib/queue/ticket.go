// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is a ticket's queue state as reported by the backend. The
// backend owns the state machine; this client renders whatever value
// arrives, known or not.
type Status string

const (
	// StatusWaiting means the ticket is queued and has not been called.
	StatusWaiting Status = "waiting"
	// StatusServing means the ticket is currently at the counter.
	StatusServing Status = "serving"
	// StatusCompleted means the ticket has been handled.
	StatusCompleted Status = "completed"
)

// CitizenID identifies the citizen a ticket belongs to. The backend
// has historically sent this as either a string handle ("C1") or a
// numeric primary key, so decoding accepts both and normalizes to a
// string.
type CitizenID string

// UnmarshalJSON accepts a JSON string or number.
func (id *CitizenID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*id = CitizenID(text)
		return nil
	}
	var numeric json.Number
	if err := json.Unmarshal(data, &numeric); err == nil {
		*id = CitizenID(numeric.String())
		return nil
	}
	return fmt.Errorf("citizen id: expected string or number, got %s", data)
}

// MarshalJSON emits the ID as a JSON number when it is purely numeric
// (matching what the backend's foreign key field expects) and as a
// string otherwise.
func (id CitizenID) MarshalJSON() ([]byte, error) {
	if numeric, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(numeric)
	}
	return json.Marshal(string(id))
}

// Ticket is one queued request for service, exactly as the backend
// serializes it. The client treats it as a read-only record: id
// uniqueness, number monotonicity, and status validity are all the
// backend's responsibility.
type Ticket struct {
	// ID is the backend's primary key for the ticket.
	ID int64 `json:"id"`

	// Number is the display sequence value, assigned per service by
	// the backend when the ticket is created.
	Number int `json:"number"`

	// Status is the ticket's queue state.
	Status Status `json:"status"`

	// Citizen identifies the requester.
	Citizen CitizenID `json:"citizen"`
}

// Label renders the ticket as its display row text.
func (t Ticket) Label() string {
	return fmt.Sprintf("Ticket #%d - %s - Citizen ID: %s", t.Number, t.Status, t.Citizen)
}
