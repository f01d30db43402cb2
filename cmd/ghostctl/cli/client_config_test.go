// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig points GHOSTCTL_CONFIG at a temp file with the given
// YAML content for the duration of the test.
func writeConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GHOSTCTL_CONFIG", path)
}

func TestClientConfig_FlagsOverrideFile(t *testing.T) {
	writeConfig(t, "socket_path: /from/file.sock\nrequest_timeout: 10s\ntarget: filetarget\n")

	c := &ClientConfig{Socket: "/from/flag.sock", Timeout: 3 * time.Second}
	opts, _, err := c.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if opts.SocketPath != "/from/flag.sock" {
		t.Errorf("SocketPath = %q, want flag value", opts.SocketPath)
	}
	if opts.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want flag value", opts.RequestTimeout)
	}
	// Unset flags fall back to the file.
	if opts.Target != "filetarget" {
		t.Errorf("Target = %q, want file value", opts.Target)
	}
}

func TestClientConfig_FileDefaultsApply(t *testing.T) {
	writeConfig(t, "request_timeout: 42s\npoll_interval: 250ms\ndisable_socket_validation: true\n")

	c := &ClientConfig{}
	opts, _, err := c.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if opts.RequestTimeout != 42*time.Second {
		t.Errorf("RequestTimeout = %v", opts.RequestTimeout)
	}
	if opts.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", opts.PollInterval)
	}
	if !opts.DisableSocketValidation {
		t.Error("DisableSocketValidation not carried from file")
	}
}

func TestClientConfig_InvalidFileIsValidationError(t *testing.T) {
	writeConfig(t, "request_timeout: soon\n")

	c := &ClientConfig{}
	_, _, err := c.resolve()
	if err == nil {
		t.Fatal("resolve succeeded on invalid config")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("error %v, want validation ToolError", err)
	}
}

func TestClientConfig_NoFileIsFine(t *testing.T) {
	// Point the search at an empty directory rather than the
	// developer's real config.
	t.Setenv("GHOSTCTL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := &ClientConfig{Socket: "/tmp/x.sock"}
	opts, logger, err := c.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if opts.SocketPath != "/tmp/x.sock" {
		t.Errorf("SocketPath = %q", opts.SocketPath)
	}
	if logger == nil {
		t.Error("resolve returned nil logger")
	}
}

func TestTargetConfig_MutuallyExclusiveSelectors(t *testing.T) {
	t.Setenv("GHOSTCTL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tc := &TargetConfig{Surface: "s-1", Pick: "shell"}
	_, err := tc.Terminal(t.Context())
	if err == nil {
		t.Fatal("Terminal succeeded with both --surface and --pick")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("error %v, want validation ToolError", err)
	}
}
