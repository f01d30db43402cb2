// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/lib/clock"
	"github.com/ghostctl/ghostctl/trace"
)

// Runner executes a script against one terminal.
type Runner struct {
	// Terminal is the surface every step targets.
	Terminal *ghostty.Terminal

	// Recorder, when set, receives an input frame for every input
	// step and a screen snapshot after every step.
	Recorder *trace.Recorder

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Clock paces sleep steps. Defaults to the real clock.
	Clock clock.Clock
}

// Run executes every step in order, stopping at the first failure.
// Errors identify the failing step by index and action name.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if s.Name != "" {
		logger = logger.With("script", s.Name)
	}

	for i, step := range s.Steps {
		label := fmt.Sprintf("steps[%d] %s", i, step.Name)
		logger.Info("executing step", "step", i, "action", step.Name)

		if err := r.runStep(ctx, step, label); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if err := r.recordScreen(ctx, label); err != nil {
			return fmt.Errorf("%s: recording screen: %w", label, err)
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step, label string) error {
	t := r.Terminal
	switch {
	case step.Send != nil:
		r.recordInput(trace.InputFrame{Action: "send", Text: step.Send.Text}, label)
		return t.Send(ctx, step.Send.Text)

	case step.Type != nil:
		r.recordInput(trace.InputFrame{Action: "type", Text: step.Type.Text}, label)
		return t.Type(ctx, step.Type.Text, time.Duration(step.Type.DelayMS)*time.Millisecond)

	case step.Press != nil:
		r.recordInput(trace.InputFrame{Action: "press", Key: step.Press.Key, Mods: step.Press.Mods}, label)
		return t.Press(ctx, step.Press.Key, step.Press.Mods)

	case step.Click != nil:
		c := step.Click
		r.recordInput(trace.InputFrame{Action: "click", X: c.X, Y: c.Y, Button: c.Button, Mods: c.Mods}, label)
		opts := ghostty.MouseOptions{Button: c.Button, Mods: c.Mods}
		if c.Double {
			return t.DoubleClick(ctx, c.X, c.Y, opts)
		}
		return t.Click(ctx, c.X, c.Y, opts)

	case step.Drag != nil:
		d := step.Drag
		r.recordInput(trace.InputFrame{
			Action: "drag", X: d.FromX, Y: d.FromY, ToX: d.ToX, ToY: d.ToY, Button: d.Button,
		}, label)
		return t.Drag(ctx, d.FromX, d.FromY, d.ToX, d.ToY,
			ghostty.DragOptions{Button: d.Button, Steps: d.Steps})

	case step.Scroll != nil:
		r.recordInput(trace.InputFrame{Action: "scroll", X: step.Scroll.DeltaX, Y: step.Scroll.DeltaY}, label)
		return t.Scroll(ctx, step.Scroll.DeltaX, step.Scroll.DeltaY, step.Scroll.Mods)

	case step.WaitText != nil:
		_, err := t.WaitForText(ctx, step.WaitText.Text, ghostty.WaitTextOptions{
			Regex:   step.WaitText.Regex,
			Timeout: millis(step.WaitText.TimeoutMS),
		})
		return err

	case step.WaitPrompt != nil:
		_, err := t.WaitForPrompt(ctx, ghostty.WaitPromptOptions{
			Pattern: step.WaitPrompt.Pattern,
			Timeout: millis(step.WaitPrompt.TimeoutMS),
		})
		return err

	case step.WaitIdle != nil:
		_, err := t.WaitForIdle(ctx, ghostty.WaitIdleOptions{
			StableFor: millis(step.WaitIdle.StableMS),
			Timeout:   millis(step.WaitIdle.TimeoutMS),
		})
		return err

	case step.ExpectContain != nil:
		return t.Expect().ToContain(ctx, step.ExpectContain.Text,
			ghostty.ExpectOptions{Timeout: millis(step.ExpectContain.TimeoutMS)})

	case step.ExpectAbsent != nil:
		return t.Expect().NotToContain(ctx, step.ExpectAbsent.Text,
			ghostty.ExpectOptions{Timeout: millis(step.ExpectAbsent.WindowMS)})

	case step.Resize != nil:
		r.recordInput(trace.InputFrame{Action: "resize", Rows: step.Resize.Rows, Cols: step.Resize.Cols}, label)
		return t.Resize(ctx, step.Resize.Rows, step.Resize.Cols)

	case step.Focus != nil:
		return t.Focus(ctx)

	case step.Screenshot != nil:
		_, err := t.Screenshot(ctx, step.Screenshot.Path)
		return err

	case step.Sleep != nil:
		return r.sleep(ctx, millis(step.Sleep.MS))
	}
	// Parse guarantees one payload is set; reaching here means a new
	// action was added without a runStep case.
	return fmt.Errorf("unmapped action %q", step.Name)
}

// recordInput writes an input frame when recording. Recording
// failures surface on the screen snapshot that follows each step, so
// input frames log and continue.
func (r *Runner) recordInput(event trace.InputFrame, label string) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.Input(r.Terminal.ID(), event, label); err != nil {
		slog.Warn("trace input frame dropped", "error", err)
	}
}

// recordScreen snapshots the terminal after a step when recording.
func (r *Runner) recordScreen(ctx context.Context, label string) error {
	if r.Recorder == nil {
		return nil
	}
	scr, err := r.Terminal.Screen(ctx, ghostty.Viewport)
	if err != nil {
		return err
	}
	return r.Recorder.Screen(r.Terminal.ID(), scr.Text, scr.CursorX, scr.CursorY, label)
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	clk := r.Clock
	if clk == nil {
		clk = clock.Real()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clk.After(d):
		return nil
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
