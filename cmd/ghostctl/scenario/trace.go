// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/trace"
)

// TraceCommand returns the "trace" command group.
func TraceCommand() *cli.Command {
	return &cli.Command{
		Name:    "trace",
		Summary: "Inspect and verify session traces",
		Subcommands: []*cli.Command{
			traceShowCommand(),
			traceVerifyCommand(),
		},
	}
}

type traceShowParams struct {
	cli.JSONOutput
}

type traceEntry struct {
	Seq     uint64 `json:"seq" desc:"frame position in the file"`
	Offset  string `json:"offset" desc:"time since the first frame"`
	Kind    string `json:"kind" desc:"frame kind: input or screen"`
	Surface string `json:"surface" desc:"surface id"`
	Label   string `json:"label" desc:"provenance, e.g. the script step"`
	Detail  string `json:"detail" desc:"one-line frame summary"`
}

func traceShowCommand() *cli.Command {
	var params traceShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print the frames of a trace",
		Usage:   "ghostctl trace show [flags] <file>",
		Examples: []cli.Example{
			{Description: "Inspect a recorded run", Command: "ghostctl trace show deploy.gtrace"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &[]traceEntry{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one trace file, got %d arguments", len(args))
			}
			file, err := os.Open(args[0])
			if err != nil {
				return cli.NotFound("%v", err)
			}
			defer file.Close()

			reader := trace.NewReader(file)
			var entries []traceEntry
			var epoch time.Time
			for {
				frame, err := reader.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return cli.Internal("%v", err)
				}
				if epoch.IsZero() {
					epoch = frame.Timestamp()
				}
				entries = append(entries, traceEntry{
					Seq:     frame.Seq,
					Offset:  frame.Timestamp().Sub(epoch).Truncate(time.Millisecond).String(),
					Kind:    string(frame.Kind),
					Surface: frame.Surface,
					Label:   frame.Label,
					Detail:  frameDetail(frame),
				})
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEQ\tOFFSET\tKIND\tLABEL\tDETAIL")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Seq, e.Offset, e.Kind, e.Label, e.Detail)
			}
			return w.Flush()
		},
	}
}

// frameDetail renders a one-line summary of a frame's payload.
func frameDetail(frame *trace.Frame) string {
	switch {
	case frame.Input != nil:
		in := frame.Input
		switch in.Action {
		case "send", "type":
			return fmt.Sprintf("%s %q", in.Action, in.Text)
		case "press":
			if in.Mods != "" {
				return fmt.Sprintf("press %s+%s", in.Mods, in.Key)
			}
			return fmt.Sprintf("press %s", in.Key)
		case "click":
			return fmt.Sprintf("click %s (%g,%g)", in.Button, in.X, in.Y)
		case "drag":
			return fmt.Sprintf("drag (%g,%g) to (%g,%g)", in.X, in.Y, in.ToX, in.ToY)
		case "scroll":
			return fmt.Sprintf("scroll (%g,%g)", in.X, in.Y)
		case "resize":
			return fmt.Sprintf("resize %dx%d", in.Rows, in.Cols)
		default:
			return in.Action
		}
	case frame.Screen != nil:
		return fmt.Sprintf("%d bytes, cursor (%d,%d)",
			len(frame.Screen.Text), frame.Screen.CursorX, frame.Screen.CursorY)
	default:
		return ""
	}
}

type traceVerifyParams struct {
	cli.JSONOutput
}

type traceVerifyResult struct {
	Frames  int    `json:"frames" desc:"total frame count"`
	Screens int    `json:"screens" desc:"screen snapshot count"`
	Inputs  int    `json:"inputs" desc:"input event count"`
	Digest  string `json:"digest" desc:"session digest over all frames"`
}

func traceVerifyCommand() *cli.Command {
	var params traceVerifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Verify the integrity of a trace",
		Description: `Re-verify every frame hash and sequence number in a trace file. A
clean file prints its counts and session digest; a corrupt, spliced,
or truncated file reports the offending frame and exits 1.`,
		Usage: "ghostctl trace verify [flags] <file>",
		Examples: []cli.Example{
			{Description: "Check a trace before archiving it", Command: "ghostctl trace verify deploy.gtrace"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &traceVerifyResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one trace file, got %d arguments", len(args))
			}
			summary, err := trace.VerifyFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
				return &cli.ExitError{Code: 1}
			}
			result := traceVerifyResult{
				Frames:  summary.Frames,
				Screens: summary.Screens,
				Inputs:  summary.Inputs,
				Digest:  trace.FormatHash(summary.Digest),
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("%s: %d frames (%d screens, %d inputs) ok\nsession digest %s\n",
				args[0], result.Frames, result.Screens, result.Inputs, result.Digest)
			return nil
		},
	}
}
