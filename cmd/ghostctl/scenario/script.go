// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"fmt"
	"os"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/script"
	"github.com/ghostctl/ghostctl/trace"
)

// ScriptCommand returns the "script" command group.
func ScriptCommand() *cli.Command {
	return &cli.Command{
		Name:    "script",
		Summary: "Run or check automation scripts",
		Description: `Run or check JSONC automation scripts. A script is a named list of
steps, one action per step, executed in order against a single
terminal. Runs stop at the first failing step.`,
		Subcommands: []*cli.Command{
			scriptRunCommand(),
			scriptCheckCommand(),
		},
	}
}

type scriptRunParams struct {
	cli.TargetConfig
	Trace       string `json:"trace" flag:"trace" desc:"record a session trace to this path"`
	Compression string `json:"compression" flag:"compression" desc:"trace compression: zstd, lz4, none" default:"zstd"`
}

func scriptRunCommand() *cli.Command {
	var params scriptRunParams

	return &cli.Command{
		Name:    "run",
		Summary: "Execute a script against a terminal",
		Usage:   "ghostctl script run [flags] <file>",
		Examples: []cli.Example{
			{Description: "Run a scenario", Command: "ghostctl script run deploy.jsonc"},
			{Description: "Run and record a trace", Command: "ghostctl script run deploy.jsonc --trace deploy.gtrace"},
		},
		Params:      func() any { return &params },
		Annotations: cli.Create(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one script file, got %d arguments", len(args))
			}
			s, err := script.ReadFile(args[0])
			if err != nil {
				return cli.Validation("%v", err)
			}

			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			runner := script.Runner{Terminal: term, Logger: params.Logger()}

			var traceFile *os.File
			var writer *trace.Writer
			if params.Trace != "" {
				tag, err := trace.ParseCompressionTag(params.Compression)
				if err != nil {
					return cli.Validation("%v", err)
				}
				traceFile, err = os.Create(params.Trace)
				if err != nil {
					return cli.Internal("creating trace file: %v", err)
				}
				defer traceFile.Close()
				writer = trace.NewWriter(traceFile, tag)
				runner.Recorder = trace.NewRecorder(writer, nil)
			}

			if err := runner.Run(ctx, s); err != nil {
				return cli.ClassifyError(err)
			}
			if writer != nil {
				if err := traceFile.Close(); err != nil {
					return cli.Internal("closing trace file: %v", err)
				}
				fmt.Printf("trace: %d frames, session digest %s\n",
					writer.Count(), trace.FormatHash(writer.SessionDigest()))
			}
			return nil
		},
	}
}

type scriptCheckParams struct {
	cli.JSONOutput
}

type scriptCheckResult struct {
	Name  string   `json:"name" desc:"script name"`
	Steps []string `json:"steps" desc:"action name of each step, in order"`
}

func scriptCheckCommand() *cli.Command {
	var params scriptCheckParams

	return &cli.Command{
		Name:    "check",
		Summary: "Parse and validate a script without running it",
		Usage:   "ghostctl script check [flags] <file>",
		Examples: []cli.Example{
			{Description: "Validate before committing", Command: "ghostctl script check deploy.jsonc"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &scriptCheckResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one script file, got %d arguments", len(args))
			}
			s, err := script.ReadFile(args[0])
			if err != nil {
				return cli.Validation("%v", err)
			}
			result := scriptCheckResult{Name: s.Name, Steps: make([]string, 0, len(s.Steps))}
			for _, step := range s.Steps {
				result.Steps = append(result.Steps, step.Name)
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("%s: %d steps ok\n", args[0], len(s.Steps))
			return nil
		},
	}
}
