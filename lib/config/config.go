// Copyright 2026 The Queuehall Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "QUEUEHALL_CONFIG"

// Config is the queuehall client configuration. Duration fields are
// YAML strings in time.ParseDuration syntax ("5s", "250ms").
type Config struct {
	// BaseURL is the root URL of the desk backend's REST API.
	BaseURL string `yaml:"base_url"`

	// PollInterval is how often each pane re-fetches its queue.
	PollInterval string `yaml:"poll_interval"`

	// RequestTimeout bounds each backend request. Empty or "0" means
	// no timeout, matching the backend contract as originally
	// consumed; a hung request then leaves the serve-next control
	// disabled until the process exits.
	RequestTimeout string `yaml:"request_timeout"`

	// Services lists the queues to display, in pane order.
	Services []ServiceConfig `yaml:"services"`

	// LogFile receives JSONL log records while the TUI owns the
	// terminal. Empty means log records are discarded in TUI mode.
	LogFile string `yaml:"log_file"`
}

// ServiceConfig names one service queue.
type ServiceConfig struct {
	// ID is the backend's integer service identifier.
	ID int `yaml:"id"`

	// Name is the pane title. Defaults to "Service <id>" when empty.
	Name string `yaml:"name"`
}

// Default returns the development configuration: the local backend
// and the two counters of the reference deployment.
func Default() Config {
	return Config{
		BaseURL:      "http://127.0.0.1:8000/api",
		PollInterval: "5s",
		Services: []ServiceConfig{
			{ID: 1, Name: "Service 1"},
			{ID: 2, Name: "Service 2"},
		},
	}
}

// Load reads configuration from the file named by QUEUEHALL_CONFIG.
// When the variable is unset, the defaults are returned as-is. There
// is no file discovery and no fallback search: configuration comes
// from exactly one named file or from Default().
func Load() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the given YAML file, applied on
// top of the defaults. Unknown fields are rejected.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	configuration := Default()
	// Files usually name their own service list; the default one
	// applies only when the file omits services entirely.
	defaultServices := configuration.Services
	configuration.Services = nil

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&configuration); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if configuration.Services == nil {
		configuration.Services = defaultServices
	}

	expand(&configuration)

	if err := configuration.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return configuration, nil
}

// expand applies environment variable expansion to path and URL
// fields. No other fields are touched and no environment variable
// overrides a config value directly.
func expand(configuration *Config) {
	configuration.BaseURL = os.ExpandEnv(configuration.BaseURL)
	configuration.LogFile = os.ExpandEnv(configuration.LogFile)
}

// Validate checks invariants the rest of the client assumes.
func (configuration *Config) Validate() error {
	if configuration.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}

	interval, err := time.ParseDuration(configuration.PollInterval)
	if err != nil {
		return fmt.Errorf("poll_interval: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("poll_interval must be positive (got %v)", interval)
	}

	if configuration.RequestTimeout != "" {
		timeout, err := time.ParseDuration(configuration.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		if timeout < 0 {
			return fmt.Errorf("request_timeout must not be negative (got %v)", timeout)
		}
	}

	if len(configuration.Services) == 0 {
		return fmt.Errorf("at least one service must be configured")
	}
	seen := make(map[int]bool, len(configuration.Services))
	for index, service := range configuration.Services {
		if service.ID <= 0 {
			return fmt.Errorf("services[%d]: id must be a positive integer (got %d)", index, service.ID)
		}
		if seen[service.ID] {
			return fmt.Errorf("services[%d]: duplicate service id %d", index, service.ID)
		}
		seen[service.ID] = true
	}
	return nil
}

// Interval returns the parsed poll interval. Call Validate first;
// unparseable values fall back to the default interval here rather
// than panicking mid-render.
func (configuration *Config) Interval() time.Duration {
	interval, err := time.ParseDuration(configuration.PollInterval)
	if err != nil || interval <= 0 {
		return 5 * time.Second
	}
	return interval
}

// Timeout returns the parsed request timeout, zero when unset.
func (configuration *Config) Timeout() time.Duration {
	if configuration.RequestTimeout == "" {
		return 0
	}
	timeout, err := time.ParseDuration(configuration.RequestTimeout)
	if err != nil || timeout < 0 {
		return 0
	}
	return timeout
}

// ServiceName returns the configured display name for a service,
// synthesizing one when the config left it empty.
func (configuration *Config) ServiceName(serviceID int) string {
	for _, service := range configuration.Services {
		if service.ID == serviceID && service.Name != "" {
			return service.Name
		}
	}
	return fmt.Sprintf("Service %d", serviceID)
}
