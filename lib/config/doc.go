// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for queuehall.
//
// Configuration is loaded from a single file specified by either the
// QUEUEHALL_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search: deterministic, auditable
// configuration with no hidden overrides. When no file is named,
// [Default] supplies the development setup (local backend, two
// services, 5 second polling).
//
// Environment variable expansion is applied to the base URL and log
// file path after loading. No other environment variables override
// config values.
package config
