// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete ghostctl command tree. Both
// the CLI binary and the MCP server walk this tree, so it is the
// single source of truth for what ghostctl can do.
package commands

import (
	"fmt"

	actioncmd "github.com/ghostctl/ghostctl/cmd/ghostctl/action"
	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	mcpcmd "github.com/ghostctl/ghostctl/cmd/ghostctl/mcp"
	querycmd "github.com/ghostctl/ghostctl/cmd/ghostctl/query"
	scenariocmd "github.com/ghostctl/ghostctl/cmd/ghostctl/scenario"
	surfacecmd "github.com/ghostctl/ghostctl/cmd/ghostctl/surface"
	watchcmd "github.com/ghostctl/ghostctl/cmd/ghostctl/watch"
	"github.com/ghostctl/ghostctl/lib/version"
)

// Root builds and returns the complete ghostctl command tree. Tool
// discovery walks root.Subcommands, so the MCP command is added last
// (after the tree is constructed) and receives the root pointer for
// introspection.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "ghostctl",
		Description: `ghostctl: terminal automation for Ghostty.

Drive Ghostty surfaces over the macOS automation socket: send input,
capture screens, wait for output, assert on content, and script whole
sessions. Point GHOSTTY_SOCKET (or --socket) at the host socket.`,
		Subcommands: []*cli.Command{
			surfacecmd.ListCommand(),
			surfacecmd.NewCommand(),
			surfacecmd.FocusCommand(),
			surfacecmd.CloseCommand(),
			surfacecmd.ResizeCommand(),
			surfacecmd.ScreenshotCommand(),
			actioncmd.SendCommand(),
			actioncmd.TypeCommand(),
			actioncmd.PressCommand(),
			actioncmd.KeyCommand(),
			actioncmd.ClickCommand(),
			actioncmd.DragCommand(),
			actioncmd.ScrollCommand(),
			querycmd.ScreenCommand(),
			querycmd.WaitCommand(),
			querycmd.ExpectCommand(),
			scenariocmd.ScriptCommand(),
			scenariocmd.TraceCommand(),
			watchcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("ghostctl %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List surfaces on the host",
				Command:     "ghostctl list",
			},
			{
				Description: "Run a command in the focused terminal and wait for the prompt",
				Command:     `ghostctl send "make test" && ghostctl press enter && ghostctl wait prompt`,
			},
			{
				Description: "Assert the tests passed",
				Command:     `ghostctl expect contain "ok"`,
			},
			{
				Description: "Watch a build in another surface",
				Command:     "ghostctl watch --pick make",
			},
			{
				Description: "Run a scripted session and record a trace",
				Command:     "ghostctl script run deploy.jsonc --trace deploy.gtrace",
			},
		},
	}

	root.Subcommands = append(root.Subcommands, mcpcmd.Command(root))
	return root
}
