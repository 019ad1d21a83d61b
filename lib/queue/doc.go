// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package queue defines the ticket record shared by every queuehall
// component. The types mirror the backend's JSON serialization; the
// backend owns all validity rules and this package enforces none.
package queue
