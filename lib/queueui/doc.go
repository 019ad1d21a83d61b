// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package queueui implements the terminal queue board. Built on
// bubbletea (Elm architecture), it shows one pane per configured
// service, each independently polling the desk backend and offering
// a serve-next action for its own queue.
//
// The [Source] interface decouples the board from the transport: the
// desk API client backs it in production, tests inject an in-memory
// fake. Panes never talk to each other; every message carries a
// service ID and the root [Model] routes it to exactly one pane.
//
// Failure policy: a failed fetch keeps the previous snapshot on
// screen and writes a structured log record. Nothing is retried and
// no error surface exists in the UI.
//
// Data flow:
//
//	[desk backend REST API]
//	        | (Source interface)
//	    [Pane] x N  <- poll ticks, serve-next
//	        |
//	    [Model] <- bubbletea event loop
//	        |
//	  [terminal output]
package queueui
