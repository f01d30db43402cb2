// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
)

// ExpectCommand returns the "expect" command group.
func ExpectCommand() *cli.Command {
	return &cli.Command{
		Name:    "expect",
		Summary: "Assert a screen or surface condition",
		Description: `Assert a condition against the target terminal. A failed assertion
prints the expectation and the actual content, then exits 1, so
expect commands compose with shell conditionals and CI steps.
Transport failures exit with a distinct error instead.`,
		Subcommands: []*cli.Command{
			expectContainCommand(),
			expectAbsentCommand(),
			expectMatchCommand(),
			expectTitleCommand(),
			expectPwdCommand(),
			expectFocusedCommand(),
		},
	}
}

// assertionExit prints a failed assertion and converts it into exit
// status 1. Anything that is not an assertion failure classifies as a
// tool error instead.
func assertionExit(err error) error {
	if err == nil {
		return nil
	}
	var ae *ghostty.AssertionError
	if errors.As(err, &ae) {
		fmt.Fprintln(os.Stderr, ae.Error())
		return &cli.ExitError{Code: 1}
	}
	return cli.ClassifyError(err)
}

type expectTextParams struct {
	cli.TargetConfig
	Text    string        `json:"text" flag:"text" desc:"text to look for" required:"true"`
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling"`
}

// oneTextArg overlays a single optional positional argument onto the
// text parameter and rejects everything else.
func oneTextArg(args []string, text *string) error {
	switch len(args) {
	case 0:
	case 1:
		*text = args[0]
	default:
		return cli.Validation("expected at most one argument, got %d", len(args))
	}
	if *text == "" {
		return cli.Validation("text is required")
	}
	return nil
}

func expectContainCommand() *cli.Command {
	var params expectTextParams

	return &cli.Command{
		Name:    "contain",
		Summary: "Assert text appears on screen",
		Usage:   "ghostctl expect contain [flags] <text>",
		Examples: []cli.Example{
			{Description: "Assert a test run passed", Command: `ghostctl expect contain "ok" || echo failed`},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if err := oneTextArg(args, &params.Text); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return assertionExit(term.Expect().ToContain(ctx, params.Text,
				ghostty.ExpectOptions{Timeout: params.Timeout}))
		},
	}
}

func expectAbsentCommand() *cli.Command {
	var params expectTextParams

	return &cli.Command{
		Name:    "absent",
		Summary: "Assert text stays off screen",
		Description: `Assert text stays off screen for the whole window. The first
sighting fails immediately; a window that passes clean succeeds.
The default window is one second.`,
		Usage: "ghostctl expect absent [flags] <text>",
		Examples: []cli.Example{
			{Description: "Assert no error scrolled past", Command: `ghostctl expect absent "panic:" --timeout 5s`},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if err := oneTextArg(args, &params.Text); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return assertionExit(term.Expect().NotToContain(ctx, params.Text,
				ghostty.ExpectOptions{Timeout: params.Timeout}))
		},
	}
}

func expectMatchCommand() *cli.Command {
	var params expectTextParams

	return &cli.Command{
		Name:    "match",
		Summary: "Assert a pattern matches the screen",
		Description: `Assert a regular expression matches the screen within the timeout.
On success the matched text prints to stdout.`,
		Usage: "ghostctl expect match [flags] <pattern>",
		Examples: []cli.Example{
			{Description: "Extract the reported version", Command: `ghostctl expect match 'v\d+\.\d+\.\d+'`},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if err := oneTextArg(args, &params.Text); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			matched, err := term.Expect().ToMatch(ctx, params.Text,
				ghostty.ExpectOptions{Timeout: params.Timeout})
			if err != nil {
				return assertionExit(err)
			}
			fmt.Println(matched)
			return nil
		},
	}
}

type expectMetaParams struct {
	cli.TargetConfig
	Value   string        `json:"value" flag:"value" desc:"expected value" required:"true"`
	Exact   bool          `json:"exact" flag:"exact" desc:"require equality instead of containment"`
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling"`
}

func expectTitleCommand() *cli.Command {
	var params expectMetaParams

	return &cli.Command{
		Name:    "title",
		Summary: "Assert the surface title",
		Usage:   "ghostctl expect title [flags] <value>",
		Examples: []cli.Example{
			{Description: "Assert vim opened the file", Command: "ghostctl expect title main.go"},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if err := oneTextArg(args, &params.Value); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return assertionExit(term.Expect().ToHaveTitle(ctx, params.Value,
				ghostty.MatchOptions{Exact: params.Exact, Timeout: params.Timeout}))
		},
	}
}

func expectPwdCommand() *cli.Command {
	var params expectMetaParams

	return &cli.Command{
		Name:    "pwd",
		Summary: "Assert the surface working directory",
		Usage:   "ghostctl expect pwd [flags] <value>",
		Examples: []cli.Example{
			{Description: "Assert cd landed in the project", Command: "ghostctl expect pwd --exact /home/user/project"},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if err := oneTextArg(args, &params.Value); err != nil {
				return err
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			return assertionExit(term.Expect().ToHavePwd(ctx, params.Value,
				ghostty.MatchOptions{Exact: params.Exact, Timeout: params.Timeout}))
		},
	}
}

type expectFocusedParams struct {
	cli.TargetConfig
	Timeout time.Duration `json:"timeout" flag:"timeout" desc:"how long to keep polling"`
}

func expectFocusedCommand() *cli.Command {
	var params expectFocusedParams

	return &cli.Command{
		Name:        "focused",
		Summary:     "Assert the surface has focus",
		Usage:       "ghostctl expect focused [flags]",
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
			return assertionExit(term.Expect().ToBeFocused(ctx,
				ghostty.ExpectOptions{Timeout: params.Timeout}))
		},
	}
}
