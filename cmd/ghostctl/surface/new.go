// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"context"
	"fmt"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
)

type newParams struct {
	cli.ClientConfig
	cli.JSONOutput
	Command []string `json:"command" flag:"command" desc:"command and arguments to run in the new surface"`
}

// newResult reports the surface that appeared.
type newResult struct {
	ID    string `json:"id" desc:"ID of the created surface"`
	Title string `json:"title"`
}

// NewCommand returns the "new" command with window and tab subcommands.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:    "new",
		Summary: "Create a window or tab",
		Description: `Create a new Ghostty window or tab, optionally running a command
in it, and print the ID of the surface that appears. The host does
not name created surfaces, so ghostctl diffs surface listings until
the new one shows up.`,
		Subcommands: []*cli.Command{
			newSurfaceCommand("window", "Open a new window",
				func(ctx context.Context, client *ghostty.Client, command []string) (*ghostty.Terminal, error) {
					return client.NewWindow(ctx, command...)
				}),
			newSurfaceCommand("tab", "Open a new tab",
				func(ctx context.Context, client *ghostty.Client, command []string) (*ghostty.Terminal, error) {
					return client.NewTab(ctx, command...)
				}),
		},
		Examples: []cli.Example{
			{Description: "Open an empty window", Command: "ghostctl new window"},
			{Description: "Open a tab running htop", Command: "ghostctl new tab --command htop"},
		},
	}
}

func newSurfaceCommand(kind, summary string, create func(context.Context, *ghostty.Client, []string) (*ghostty.Terminal, error)) *cli.Command {
	var params newParams

	return &cli.Command{
		Name:        kind,
		Summary:     summary,
		Usage:       fmt.Sprintf("ghostctl new %s [--command <cmd>...]", kind),
		Params:      func() any { return &params },
		Output:      func() any { return &newResult{} },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s (use --command)", args[0])
			}

			client, err := params.Client()
			if err != nil {
				return err
			}

			term, err := create(context.Background(), client, params.Command)
			if err != nil {
				return cli.ClassifyError(err)
			}

			result := newResult{ID: term.ID(), Title: term.Title()}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Println(surfaceSummary(term))
			return nil
		},
	}
}
