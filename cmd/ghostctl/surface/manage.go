// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"context"
	"fmt"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
)

type targetOnlyParams struct {
	cli.TargetConfig
}

// FocusCommand returns the "focus" command.
func FocusCommand() *cli.Command {
	var params targetOnlyParams

	return &cli.Command{
		Name:    "focus",
		Summary: "Focus a surface",
		Usage:   "ghostctl focus [--surface <id> | --pick <query>]",
		Examples: []cli.Example{
			{Description: "Focus the surface running the build", Command: "ghostctl focus --pick build"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Idempotent(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Focus(ctx))
		},
	}
}

// CloseCommand returns the "close" command.
func CloseCommand() *cli.Command {
	var params targetOnlyParams

	return &cli.Command{
		Name:    "close",
		Summary: "Close a surface",
		Description: `Close a surface. Whatever runs in it is terminated the way
closing the window would terminate it; there is no undo.`,
		Usage:       "ghostctl close [--surface <id> | --pick <query>]",
		Params:      func() any { return &params },
		Annotations: cli.Destructive(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Close(ctx))
		},
	}
}

type resizeParams struct {
	cli.TargetConfig
	Rows int `json:"rows" flag:"rows" desc:"new row count (0 keeps current)"`
	Cols int `json:"cols" flag:"cols" desc:"new column count (0 keeps current)"`
}

// ResizeCommand returns the "resize" command.
func ResizeCommand() *cli.Command {
	var params resizeParams

	return &cli.Command{
		Name:    "resize",
		Summary: "Resize a surface",
		Usage:   "ghostctl resize --rows <n> --cols <n>",
		Examples: []cli.Example{
			{Description: "Make the focused surface 40x120", Command: "ghostctl resize --rows 40 --cols 120"},
			{Description: "Change only the width", Command: "ghostctl resize --cols 200"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Idempotent(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Rows == 0 && params.Cols == 0 {
				return cli.Validation("at least one of --rows and --cols is required")
			}
			if params.Rows < 0 || params.Cols < 0 {
				return cli.Validation("--rows and --cols must not be negative")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Resize(ctx, params.Rows, params.Cols))
		},
	}
}

type screenshotParams struct {
	cli.TargetConfig
	Output string `json:"output" flag:"output,o" desc:"output image path" default:"screenshot.png"`
}

// ScreenshotCommand returns the "screenshot" command.
func ScreenshotCommand() *cli.Command {
	var params screenshotParams

	return &cli.Command{
		Name:    "screenshot",
		Summary: "Capture a surface to an image file",
		Usage:   "ghostctl screenshot [-o <path>]",
		Examples: []cli.Example{
			{Description: "Capture the focused surface", Command: "ghostctl screenshot -o build-failure.png"},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			path, err := term.Screenshot(ctx, params.Output)
			if err != nil {
				return cli.ClassifyError(err)
			}
			fmt.Println(path)
			return nil
		},
	}
}
