// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"context"
	"time"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/screen"
)

type waitOutput struct {
	Text    string `json:"text" desc:"screen content when the wait resolved"`
	CursorX int    `json:"cursor_x" desc:"cursor column"`
	CursorY int    `json:"cursor_y" desc:"cursor row"`
}

// WaitCommand returns the "wait" command group.
func WaitCommand() *cli.Command {
	return &cli.Command{
		Name:    "wait",
		Summary: "Block until a screen condition holds",
		Description: `Block until a screen condition holds, polling the target terminal.
A wait that does not resolve within the timeout exits with an error
carrying the final screen content.`,
		Subcommands: []*cli.Command{
			waitTextCommand(),
			waitPromptCommand(),
			waitIdleCommand(),
		},
	}
}

type waitTextParams struct {
	cli.TargetConfig
	cli.JSONOutput
	Text    string        `json:"text" flag:"text" desc:"text or pattern to wait for" required:"true"`
	Regex   bool          `json:"regex" flag:"regex" desc:"treat the text as a regular expression"`
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling" default:"30s"`
}

func waitTextCommand() *cli.Command {
	var params waitTextParams

	return &cli.Command{
		Name:    "text",
		Summary: "Wait for text to appear on screen",
		Usage:   "ghostctl wait text [flags] [<text>]",
		Examples: []cli.Example{
			{Description: "Wait for a build to finish", Command: `ghostctl wait text "Build complete"`},
			{Description: "Wait for a version banner by pattern", Command: `ghostctl wait text --regex 'v\d+\.\d+'`},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &waitOutput{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one text argument, got %d", len(args))
			}
			if len(args) == 1 {
				params.Text = args[0]
			}
			if params.Text == "" {
				return cli.Validation("text to wait for is required")
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			scr, err := term.WaitForText(ctx, params.Text, ghostty.WaitTextOptions{
				Timeout: params.Timeout,
				Regex:   params.Regex,
			})
			return emitWaitResult(&params.JSONOutput, scr, err)
		},
	}
}

type waitPromptParams struct {
	cli.TargetConfig
	cli.JSONOutput
	Pattern string        `json:"pattern" flag:"pattern" desc:"prompt regex, default matches common shell sigils"`
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling" default:"30s"`
}

func waitPromptCommand() *cli.Command {
	var params waitPromptParams

	return &cli.Command{
		Name:    "prompt",
		Summary: "Wait for a shell prompt",
		Usage:   "ghostctl wait prompt [flags]",
		Examples: []cli.Example{
			{Description: "Wait for the shell to come back", Command: "ghostctl wait prompt"},
			{Description: "Wait for a custom prompt", Command: `ghostctl wait prompt --pattern '\(venv\) \$\s*$'`},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &waitOutput{} },
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
			scr, err := term.WaitForPrompt(ctx, ghostty.WaitPromptOptions{
				Timeout: params.Timeout,
				Pattern: params.Pattern,
			})
			return emitWaitResult(&params.JSONOutput, scr, err)
		},
	}
}

type waitIdleParams struct {
	cli.TargetConfig
	cli.JSONOutput
	Stable  time.Duration `json:"stable" flag:"stable" desc:"how long content must hold still" default:"500ms"`
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling" default:"30s"`
}

func waitIdleCommand() *cli.Command {
	var params waitIdleParams

	return &cli.Command{
		Name:    "idle",
		Summary: "Wait for the screen to stop changing",
		Usage:   "ghostctl wait idle [flags]",
		Examples: []cli.Example{
			{Description: "Wait for scrolling output to settle", Command: "ghostctl wait idle --stable 2s"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &waitOutput{} },
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
			scr, err := term.WaitForIdle(ctx, ghostty.WaitIdleOptions{
				Timeout:   params.Timeout,
				StableFor: params.Stable,
			})
			return emitWaitResult(&params.JSONOutput, scr, err)
		},
	}
}

// emitWaitResult reports a resolved wait: JSON when requested, silent
// success otherwise. Failures classify for the tool surface.
func emitWaitResult(j *cli.JSONOutput, scr screen.Screen, err error) error {
	if err != nil {
		return cli.ClassifyError(err)
	}
	if done, err := j.EmitJSON(waitOutput{Text: scr.Text, CursorX: scr.CursorX, CursorY: scr.CursorY}); done {
		return err
	}
	return nil
}
