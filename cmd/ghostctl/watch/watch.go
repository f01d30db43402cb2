// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch implements "ghostctl watch", the live surface viewer.
package watch

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/lib/watchui"
)

type watchParams struct {
	cli.TargetConfig
	Interval time.Duration `json:"interval" flag:"interval" desc:"poll interval" default:"500ms"`
}

// Command returns the "watch" command.
func Command() *cli.Command {
	var params watchParams

	return &cli.Command{
		Name:    "watch",
		Summary: "Watch a surface live",
		Description: `Open a full-screen live view of the target surface, polling on a
fixed interval. The view is read-only: keystrokes stay local. Press
p to pause, tab to cycle surfaces, q to quit.`,
		Usage: "ghostctl watch [flags]",
		Examples: []cli.Example{
			{Description: "Watch the focused surface", Command: "ghostctl watch"},
			{Description: "Watch a build at a slower cadence", Command: "ghostctl watch --pick make --interval 2s"},
		},
		// Bound through Flags rather than Params: watch is interactive
		// and must not surface as an MCP tool.
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("watch", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			client, err := params.Client()
			if err != nil {
				return err
			}
			model := watchui.NewModel(watchui.Config{
				Client: client,
				Resolve: func(ctx context.Context, c *ghostty.Client) (*ghostty.Terminal, error) {
					return params.Resolve(ctx, c)
				},
				Interval: params.Interval,
			})
			program := tea.NewProgram(model, tea.WithAltScreen())
			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(watchui.Model); ok && m.Err() != nil {
				return cli.ClassifyError(m.Err())
			}
			return nil
		},
	}
}
