// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package deskclient is a typed HTTP client for the service-desk
// ticket backend. It covers the four operations the backend exposes
// for queue work: listing a service's queue, peeking at the next
// pending ticket, advancing the queue, and taking a new ticket.
//
// The client adds no policy on top of the wire contract: no retries,
// no caching, no reordering of the backend's ticket ordering. Errors
// are explicit: transport and decode failures wrap the underlying
// error, backend rejections surface as [*APIError].
package deskclient
