// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. The headless board
// follower polls on a clock.Ticker; tests drive it with a FakeClock
// instead of sleeping through real intervals.
package clock
