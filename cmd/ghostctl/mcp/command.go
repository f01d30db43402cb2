// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import "github.com/ghostctl/ghostctl/cmd/ghostctl/cli"

// Command returns the "mcp" command group. The root parameter is the
// top-level CLI command tree, used for tool discovery when the
// "serve" subcommand starts.
func Command(root *cli.Command) *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Summary: "Model Context Protocol server for agent tool access",
		Description: `MCP server that exposes ghostctl commands as tools over
newline-delimited JSON-RPC 2.0 on stdin/stdout.

Agents use this to drive Ghostty terminals via structured tool
calls. The server discovers tools from the CLI command tree and
generates JSON Schema descriptions from parameter struct tags.`,
		Subcommands: []*cli.Command{
			serveCommand(root),
		},
	}
}

func serveCommand(root *cli.Command) *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Summary: "Start MCP server on stdin/stdout",
		Description: `Start a Model Context Protocol server that reads JSON-RPC 2.0
requests from stdin and writes responses to stdout.

The server discovers all CLI commands with typed parameter structs
and exposes them as MCP tools. Tool names are underscore-joined
command paths (e.g., ghostctl_wait_text).

This command is intended to be launched by MCP-capable clients
(such as AI agent frameworks) as a subprocess.`,
		Usage: "ghostctl mcp serve",
		Examples: []cli.Example{
			{
				Description: "Start MCP server (typically launched by an agent framework)",
				Command:     "ghostctl mcp serve",
			},
		},
		Run: func(args []string) error {
			server := NewServer(root)
			return server.Serve()
		},
	}
}
