// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
)

type listParams struct {
	cli.ClientConfig
	cli.JSONOutput
}

// listEntry is a single row in the list output.
type listEntry struct {
	ID      string `json:"id" desc:"surface ID"`
	Title   string `json:"title" desc:"window title"`
	Pwd     string `json:"pwd" desc:"working directory"`
	Focused bool   `json:"focused" desc:"whether the surface has focus"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
}

// ListCommand returns the "list" command.
func ListCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List terminal surfaces",
		Description: `List every surface the Ghostty instance reports, in window and
tab order. The focused surface is marked with an asterisk.`,
		Usage: "ghostctl list [--json]",
		Examples: []cli.Example{
			{Description: "Table of all surfaces", Command: "ghostctl list"},
			{Description: "Structured output for scripts", Command: "ghostctl list --json"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &[]listEntry{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runList(params)
		},
	}
}

func runList(params listParams) error {
	client, err := params.Client()
	if err != nil {
		return err
	}

	ctx := context.Background()
	surfaces, err := client.ListSurfaces(ctx)
	if err != nil {
		return cli.ClassifyError(err)
	}

	entries := make([]listEntry, len(surfaces))
	for i, s := range surfaces {
		entries[i] = listEntry{
			ID:      s.ID,
			Title:   s.Title,
			Pwd:     s.Pwd,
			Focused: s.Focused,
			Rows:    s.Rows,
			Cols:    s.Cols,
		}
	}

	if done, err := params.EmitJSON(entries); done {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no surfaces")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTITLE\tPWD\tSIZE")
	for _, e := range entries {
		marker := " "
		if e.Focused {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%dx%d\n", marker, e.ID, e.Title, e.Pwd, e.Rows, e.Cols)
	}
	return tw.Flush()
}

// surfaceSummary reports a created or targeted surface on stdout.
func surfaceSummary(t *ghostty.Terminal) string {
	return fmt.Sprintf("%s\t%s", t.ID(), t.Title())
}
