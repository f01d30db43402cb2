// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/lib/config"
)

// ClientConfig holds the connection flags shared by every command
// that talks to a Ghostty instance. It implements [FlagBinder], so
// embedding it in a params struct binds --socket, --target,
// --timeout, --no-validate, and --log-level. Flag values override the
// config file, which overrides built-in defaults.
type ClientConfig struct {
	Socket     string
	Target     string
	Timeout    time.Duration
	NoValidate bool
	LogLevel   string
}

// AddFlags binds the connection flags, satisfying [FlagBinder].
func (c *ClientConfig) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.Socket, "socket", "", "path to the Ghostty control socket (overrides discovery)")
	flagSet.StringVar(&c.Target, "target", "", "Ghostty instance name (default instance when empty)")
	flagSet.DurationVar(&c.Timeout, "timeout", 0, "request timeout (default 30s)")
	flagSet.BoolVar(&c.NoValidate, "no-validate", false, "skip socket ownership and permission checks")
	flagSet.StringVar(&c.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Client resolves the effective connection settings and builds a
// client. The config file is loaded fresh on each call; a missing
// file contributes nothing.
func (c *ClientConfig) Client() (*ghostty.Client, error) {
	opts, logger, err := c.resolve()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	return ghostty.NewClient(opts), nil
}

// Logger builds the command logger at the effective log level. Usable
// independently of Client for commands that never connect.
func (c *ClientConfig) Logger() *slog.Logger {
	level := c.LogLevel
	if level == "" {
		if cfg, err := config.Load(); err == nil {
			level = cfg.LogLevel
		}
	}
	return NewCommandLogger(ParseLevel(level))
}

// resolve merges flags over the config file into client options.
func (c *ClientConfig) resolve() (ghostty.Options, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return ghostty.Options{}, nil, Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ghostty.Options{}, nil, Validation("config: %w", err)
	}

	opts := ghostty.Options{
		SocketPath:              c.Socket,
		Target:                  c.Target,
		RequestTimeout:          c.Timeout,
		DisableSocketValidation: c.NoValidate,
	}
	if opts.SocketPath == "" {
		opts.SocketPath = cfg.SocketPath
	}
	if opts.Target == "" {
		opts.Target = cfg.Target
	}
	if opts.RequestTimeout == 0 && cfg.RequestTimeout != "" {
		// Validate() already proved these parse.
		opts.RequestTimeout, _ = time.ParseDuration(cfg.RequestTimeout)
	}
	if cfg.PollInterval != "" {
		opts.PollInterval, _ = time.ParseDuration(cfg.PollInterval)
	}
	if !opts.DisableSocketValidation {
		opts.DisableSocketValidation = cfg.DisableSocketValidation
	}

	level := c.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	return opts, NewCommandLogger(ParseLevel(level)), nil
}

// TargetConfig extends [ClientConfig] with surface selection. Embed
// it in the params struct of any command that acts on one surface:
// --surface selects by exact ID, --pick fuzzy-matches against titles,
// and with neither the focused surface wins, falling back to the
// first in listing order.
type TargetConfig struct {
	ClientConfig

	Surface string
	Pick    string
}

// AddFlags binds connection and surface-selection flags.
func (t *TargetConfig) AddFlags(flagSet *pflag.FlagSet) {
	t.ClientConfig.AddFlags(flagSet)
	flagSet.StringVar(&t.Surface, "surface", "", "target surface by ID")
	flagSet.StringVar(&t.Pick, "pick", "", "target surface by fuzzy title match")
}

// Terminal builds a client and resolves the target surface.
func (t *TargetConfig) Terminal(ctx context.Context) (*ghostty.Terminal, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	return t.Resolve(ctx, client)
}

// Resolve picks the target surface using an existing client.
func (t *TargetConfig) Resolve(ctx context.Context, client *ghostty.Client) (*ghostty.Terminal, error) {
	switch {
	case t.Surface != "" && t.Pick != "":
		return nil, Validation("--surface and --pick are mutually exclusive")

	case t.Surface != "":
		term, err := client.Terminals().ByID(ctx, t.Surface)
		if err != nil {
			return nil, ClassifyError(err)
		}
		if term == nil {
			return nil, NotFound("no surface with ID %q", t.Surface).
				WithHint("run 'ghostctl list' to see surface IDs")
		}
		return term, nil

	case t.Pick != "":
		term, err := client.Terminals().Match(ctx, t.Pick)
		if err != nil {
			return nil, ClassifyError(err)
		}
		if term == nil {
			return nil, NotFound("no surface title matches %q", t.Pick)
		}
		return term, nil
	}

	term, err := client.Terminals().Focused(ctx)
	if err != nil {
		return nil, ClassifyError(err)
	}
	if term != nil {
		return term, nil
	}
	term, err = client.Terminals().First(ctx)
	if err != nil {
		return nil, ClassifyError(err)
	}
	return term, nil
}
