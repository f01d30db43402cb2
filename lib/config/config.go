// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is ghostctl's configuration file. The zero value means
// "defer to built-in defaults everywhere", which is why a missing
// config file is not an error.
type Config struct {
	// SocketPath overrides socket discovery with an explicit path to
	// the Ghostty control socket. Empty means discover via
	// XDG_RUNTIME_DIR / TMPDIR / /tmp.
	SocketPath string `yaml:"socket_path"`

	// Target selects a Ghostty instance when several share a socket
	// directory. Empty means the host's default instance.
	Target string `yaml:"target"`

	// RequestTimeout bounds each socket request cycle, as a
	// time.ParseDuration string (e.g. "30s", "2m"). Empty means the
	// client default of 30s.
	RequestTimeout string `yaml:"request_timeout"`

	// PollInterval is the sleep between fetches in wait and poll
	// loops, as a duration string. Empty means the client default of
	// 100ms.
	PollInterval string `yaml:"poll_interval"`

	// DisableSocketValidation skips the pre-connect ownership and
	// permission checks on the socket path. The zero value keeps
	// validation on.
	DisableSocketValidation bool `yaml:"disable_socket_validation"`

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string `yaml:"log_level"`
}

// envConfigPath is the environment variable naming an explicit config
// file. When set, no search is performed and the file must exist.
const envConfigPath = "GHOSTCTL_CONFIG"

// Load reads the config file from the default search path. When no
// file exists anywhere on the path, it returns a zero Config and no
// error. When GHOSTCTL_CONFIG is set, that file must exist.
func Load() (*Config, error) {
	if explicit := os.Getenv(envConfigPath); explicit != "" {
		return LoadFile(explicit)
	}

	path := defaultPath(os.Getenv)
	if path == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from a specific file path. Unlike
// [Load], the file must exist: an explicit path pointing nowhere is a
// user mistake worth surfacing.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := parse(data, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parse expands environment references in data and decodes it
// strictly. An empty document yields a zero Config.
func parse(data []byte, getenv func(string) string) (*Config, error) {
	expanded := expandVars(string(data), getenv)

	decoder := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// defaultPath returns the config file path implied by the XDG
// conventions, or "" when no home directory can be determined. The
// file may or may not exist; [Load] checks.
func defaultPath(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ghostctl", "config.yaml")
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "ghostctl", "config.yaml")
	}
	return ""
}

// varPattern matches ${VAR} and ${VAR:-default} references.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars substitutes ${VAR} and ${VAR:-default} patterns using
// getenv. An unset variable without a default expands to the empty
// string.
func expandVars(s string, getenv func(string) string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value := getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// logLevels are the accepted log_level values. Empty is also valid
// and means info.
var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for structural errors. All
// problems are reported in one pass, joined into a single error.
func (c *Config) Validate() error {
	var errs []error

	if c.RequestTimeout != "" {
		if d, err := time.ParseDuration(c.RequestTimeout); err != nil {
			errs = append(errs, fmt.Errorf("invalid request_timeout %q: %v", c.RequestTimeout, err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("request_timeout must be positive, got %q", c.RequestTimeout))
		}
	}

	if c.PollInterval != "" {
		if d, err := time.ParseDuration(c.PollInterval); err != nil {
			errs = append(errs, fmt.Errorf("invalid poll_interval %q: %v", c.PollInterval, err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("poll_interval must be positive, got %q", c.PollInterval))
		}
	}

	if c.LogLevel != "" && !contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of %v, got %q", logLevels, c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
