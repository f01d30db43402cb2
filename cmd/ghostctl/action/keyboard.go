// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package action

import (
	"context"
	"strings"
	"time"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
)

type sendParams struct {
	cli.TargetConfig
	Text string `json:"text" flag:"text" desc:"text to send (alternative to the positional argument)" required:"true"`
}

// SendCommand returns the "send" command: text plus a carriage return.
func SendCommand() *cli.Command {
	var params sendParams

	return &cli.Command{
		Name:    "send",
		Summary: "Send text followed by return",
		Description: `Send text to a surface followed by a carriage return, the way a
user would type a command and press enter. Multiple positional
arguments are joined with spaces.`,
		Usage: "ghostctl send <text>...",
		Examples: []cli.Example{
			{Description: "Run a command in the focused surface", Command: "ghostctl send 'make test'"},
			{Description: "Target a surface by fuzzy title", Command: "ghostctl send --pick vim ':wq'"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			text := params.Text
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}
			if text == "" {
				return cli.Validation("text to send is required")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Send(ctx, text))
		},
	}
}

type typeParams struct {
	cli.TargetConfig
	Text  string        `json:"text" flag:"text" desc:"text to type (alternative to the positional argument)" required:"true"`
	Delay time.Duration `json:"delay" flag:"delay" desc:"pause between characters (0 sends the text in one request)"`
}

// TypeCommand returns the "type" command: text without a return.
func TypeCommand() *cli.Command {
	var params typeParams

	return &cli.Command{
		Name:    "type",
		Summary: "Type text without pressing return",
		Description: `Inject text exactly as given, with no trailing return. With
--delay the text goes one character per request, pacing keystrokes
for applications that debounce input.`,
		Usage: "ghostctl type [--delay <duration>] <text>...",
		Examples: []cli.Example{
			{Description: "Fill a prompt without submitting", Command: "ghostctl type 'git commit -m '"},
			{Description: "Slow typing for a TUI form", Command: "ghostctl type --delay 50ms username"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			text := params.Text
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}
			if text == "" {
				return cli.Validation("text to type is required")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Type(ctx, text, params.Delay))
		},
	}
}

type pressParams struct {
	cli.TargetConfig
	Mods string `json:"mods" flag:"mods" desc:"comma-separated modifiers (ctrl, alt, shift, super)"`
}

// PressCommand returns the "press" command: one key tap.
func PressCommand() *cli.Command {
	var params pressParams

	return &cli.Command{
		Name:    "press",
		Summary: "Press and release one key",
		Description: `Tap a key: a press event immediately followed by a release. Key
names are W3C key codes ("KeyC", "Enter", "F5") with friendly
aliases ("Up", "Escape") and the legacy "Ctrl+X" form accepted.`,
		Usage: "ghostctl press [--mods <mods>] <key>",
		Examples: []cli.Example{
			{Description: "Press enter", Command: "ghostctl press Enter"},
			{Description: "Interrupt the foreground process", Command: "ghostctl press --mods ctrl KeyC"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one key name, got %d arguments", len(args))
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return cli.ClassifyError(term.Press(ctx, args[0], params.Mods))
		},
	}
}

// KeyCommand returns the "key" command with down and up subcommands,
// for holding modifiers across other input.
func KeyCommand() *cli.Command {
	return &cli.Command{
		Name:    "key",
		Summary: "Press or release a key without the matching transition",
		Description: `Send a bare key transition. "key down" presses without releasing,
"key up" releases a previously held key. Pair them to hold a
modifier across clicks or other keys; prefer "press" for ordinary
keystrokes.`,
		Subcommands: []*cli.Command{
			keyTransitionCommand("down", "Press a key without releasing it"),
			keyTransitionCommand("up", "Release a previously pressed key"),
		},
		Examples: []cli.Example{
			{Description: "Shift-click by holding the key around a click", Command: "ghostctl key down ShiftLeft && ghostctl click 10 4 && ghostctl key up ShiftLeft"},
		},
	}
}

func keyTransitionCommand(direction, summary string) *cli.Command {
	var params pressParams

	return &cli.Command{
		Name:        direction,
		Summary:     summary,
		Usage:       "ghostctl key " + direction + " [--mods <mods>] <key>",
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one key name, got %d arguments", len(args))
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			if direction == "down" {
				return cli.ClassifyError(term.KeyDown(ctx, args[0], params.Mods))
			}
			return cli.ClassifyError(term.KeyUp(ctx, args[0], params.Mods))
		},
	}
}
