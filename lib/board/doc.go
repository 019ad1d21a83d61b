// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package board renders service queues as plain text for
// non-interactive use: a one-shot snapshot for scripts and a follow
// mode that reprints the board on a fixed interval. The interactive
// terminal UI lives in queueui; this package shares its fetch
// contract but none of its rendering.
package board
