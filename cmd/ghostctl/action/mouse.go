// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package action

import (
	"context"
	"strconv"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
)

type clickParams struct {
	cli.TargetConfig
	X      float64 `json:"x" flag:"x" desc:"cell column" required:"true"`
	Y      float64 `json:"y" flag:"y" desc:"cell row" required:"true"`
	Button string  `json:"button" flag:"button" desc:"mouse button: left, right, middle" default:"left"`
	Mods   string  `json:"mods" flag:"mods" desc:"comma-separated modifiers held during the click"`
	Double bool    `json:"double" flag:"double" desc:"double-click instead of a single click"`
}

// ClickCommand returns the "click" command.
func ClickCommand() *cli.Command {
	var params clickParams

	return &cli.Command{
		Name:    "click",
		Summary: "Click at a cell coordinate",
		Description: `Click at a cell coordinate. Coordinates are fractional cell
positions, x across and y down, origin at the top left. The two
positional arguments are shorthand for --x and --y.`,
		Usage: "ghostctl click [flags] [<x> <y>]",
		Examples: []cli.Example{
			{Description: "Left-click at column 10, row 4", Command: "ghostctl click 10 4"},
			{Description: "Right-click for a context menu", Command: "ghostctl click --button right 10 4"},
			{Description: "Double-click to select a word", Command: "ghostctl click --double 22 7"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if err := positionalCoords(args, &params.X, &params.Y); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			opts := ghostty.MouseOptions{Button: params.Button, Mods: params.Mods}
			if params.Double {
				return cli.ClassifyError(term.DoubleClick(ctx, params.X, params.Y, opts))
			}
			return cli.ClassifyError(term.Click(ctx, params.X, params.Y, opts))
		},
	}
}

type dragParams struct {
	cli.TargetConfig
	FromX  float64 `json:"from_x" flag:"from-x" desc:"origin cell column" required:"true"`
	FromY  float64 `json:"from_y" flag:"from-y" desc:"origin cell row" required:"true"`
	ToX    float64 `json:"to_x" flag:"to-x" desc:"destination cell column" required:"true"`
	ToY    float64 `json:"to_y" flag:"to-y" desc:"destination cell row" required:"true"`
	Steps  int     `json:"steps" flag:"steps" desc:"interpolated move events between press and release" default:"10"`
	Button string  `json:"button" flag:"button" desc:"mouse button to hold" default:"left"`
}

// DragCommand returns the "drag" command.
func DragCommand() *cli.Command {
	var params dragParams

	return &cli.Command{
		Name:    "drag",
		Summary: "Drag from one cell to another",
		Description: `Press at the origin, move in interpolated steps, and release at
the destination. Four positional arguments are shorthand for
--from-x --from-y --to-x --to-y.`,
		Usage: "ghostctl drag [flags] [<from-x> <from-y> <to-x> <to-y>]",
		Examples: []cli.Example{
			{Description: "Select a line by dragging across it", Command: "ghostctl drag 0 4 79 4"},
			{Description: "Coarse drag with fewer move events", Command: "ghostctl drag --steps 3 0 0 20 10"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			switch len(args) {
			case 0:
			case 4:
				for i, target := range []*float64{&params.FromX, &params.FromY, &params.ToX, &params.ToY} {
					v, err := strconv.ParseFloat(args[i], 64)
					if err != nil {
						return cli.Validation("coordinate %q is not a number", args[i])
					}
					*target = v
				}
			default:
				return cli.Validation("expected four coordinates, got %d arguments", len(args))
			}
			if params.Steps < 0 {
				return cli.Validation("--steps must not be negative")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Drag(ctx, params.FromX, params.FromY, params.ToX, params.ToY,
				ghostty.DragOptions{Button: params.Button, Steps: params.Steps}))
		},
	}
}

type scrollParams struct {
	cli.TargetConfig
	DeltaX float64 `json:"delta_x" flag:"delta-x" desc:"horizontal scroll delta"`
	DeltaY float64 `json:"delta_y" flag:"delta-y" desc:"vertical scroll delta (negative scrolls up)"`
	Mods   string  `json:"mods" flag:"mods" desc:"comma-separated modifiers held during the scroll"`
}

// ScrollCommand returns the "scroll" command.
func ScrollCommand() *cli.Command {
	var params scrollParams

	return &cli.Command{
		Name:    "scroll",
		Summary: "Send a scroll event",
		Usage:   "ghostctl scroll --delta-y <n> [--delta-x <n>]",
		Examples: []cli.Example{
			{Description: "Scroll up five lines", Command: "ghostctl scroll --delta-y -5"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.DeltaX == 0 && params.DeltaY == 0 {
				return cli.Validation("at least one of --delta-x and --delta-y is required")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Scroll(ctx, params.DeltaX, params.DeltaY, params.Mods))
		},
	}
}

// positionalCoords overlays two positional arguments onto x and y.
func positionalCoords(args []string, x, y *float64) error {
	switch len(args) {
	case 0:
		return nil
	case 2:
		for i, target := range []*float64{x, y} {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return cli.Validation("coordinate %q is not a number", args[i])
			}
			*target = v
		}
		return nil
	default:
		return cli.Validation("expected two coordinates, got %d arguments", len(args))
	}
}
