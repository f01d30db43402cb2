// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Script is a parsed scenario: an ordered step list with optional
// identifying metadata.
type Script struct {
	// Name identifies the scenario in logs and trace labels.
	Name string

	// Description is free-form documentation from the file.
	Description string

	// Steps are executed in order. Every step has passed validation.
	Steps []Step
}

// Step is one action in a script. Exactly one payload pointer is set,
// matching Name. The set of actions is closed; Parse fails on
// anything else.
type Step struct {
	// Name is the action key as written in the file ("send",
	// "wait_text", ...).
	Name string

	Send          *SendStep
	Type          *TypeStep
	Press         *PressStep
	Click         *ClickStep
	Drag          *DragStep
	Scroll        *ScrollStep
	WaitText      *WaitTextStep
	WaitPrompt    *WaitPromptStep
	WaitIdle      *WaitIdleStep
	ExpectContain *ExpectContainStep
	ExpectAbsent  *ExpectAbsentStep
	Resize        *ResizeStep
	Focus         *FocusStep
	Screenshot    *ScreenshotStep
	Sleep         *SleepStep
}

// SendStep injects text followed by a carriage return.
type SendStep struct {
	Text string `json:"text"`
}

// TypeStep injects text without a trailing return, optionally paced
// one character per request.
type TypeStep struct {
	Text    string `json:"text"`
	DelayMS int    `json:"delay_ms,omitempty"`
}

// PressStep presses and releases one key.
type PressStep struct {
	Key  string `json:"key"`
	Mods string `json:"mods,omitempty"`
}

// ClickStep clicks at a cell coordinate.
type ClickStep struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button,omitempty"`
	Mods   string  `json:"mods,omitempty"`
	Double bool    `json:"double,omitempty"`
}

// DragStep presses at the origin, moves in interpolated steps, and
// releases at the destination.
type DragStep struct {
	FromX  float64 `json:"from_x"`
	FromY  float64 `json:"from_y"`
	ToX    float64 `json:"to_x"`
	ToY    float64 `json:"to_y"`
	Steps  int     `json:"steps,omitempty"`
	Button string  `json:"button,omitempty"`
}

// ScrollStep sends one scroll delta.
type ScrollStep struct {
	DeltaX float64 `json:"delta_x,omitempty"`
	DeltaY float64 `json:"delta_y,omitempty"`
	Mods   string  `json:"mods,omitempty"`
}

// WaitTextStep polls until text appears in the raw screen content.
type WaitTextStep struct {
	Text      string `json:"text"`
	Regex     bool   `json:"regex,omitempty"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// WaitPromptStep polls until a shell prompt is visible. An empty
// pattern uses the default prompt pattern.
type WaitPromptStep struct {
	Pattern   string `json:"pattern,omitempty"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// WaitIdleStep polls until screen content holds still.
type WaitIdleStep struct {
	StableMS  int `json:"stable_ms,omitempty"`
	TimeoutMS int `json:"timeout_ms,omitempty"`
}

// ExpectContainStep asserts text appears within the timeout.
type ExpectContainStep struct {
	Text      string `json:"text"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// ExpectAbsentStep asserts text stays absent for the whole window.
type ExpectAbsentStep struct {
	Text     string `json:"text"`
	WindowMS int    `json:"window_ms,omitempty"`
}

// ResizeStep resizes the surface. A zero dimension is left unchanged.
type ResizeStep struct {
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`
}

// FocusStep focuses the surface. It has no parameters.
type FocusStep struct{}

// ScreenshotStep captures the surface to an image file.
type ScreenshotStep struct {
	Path string `json:"path"`
}

// SleepStep pauses the script.
type SleepStep struct {
	MS int `json:"ms"`
}

// scriptFile is the top-level wire shape. Steps stay raw so each one
// can be decoded against its action's payload type.
type scriptFile struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Steps       []json.RawMessage `json:"steps"`
}

// Parse strips JSONC comments and trailing commas from data, decodes
// the step list, and validates every step. The returned script is
// ready to run.
func Parse(data []byte) (*Script, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()
	var file scriptFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}

	s := &Script{Name: file.Name, Description: file.Description}
	for i, raw := range file.Steps {
		step, err := parseStep(raw)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

// ReadFile reads and parses a script file from disk.
func ReadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// parseStep decodes one step object. The object must have exactly one
// key, and that key must name a known action.
func parseStep(raw json.RawMessage) (Step, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return Step{}, fmt.Errorf("step must be an object: %w", err)
	}
	if len(keyed) != 1 {
		return Step{}, fmt.Errorf("step must have exactly one action key, found %d", len(keyed))
	}

	var name string
	var payload json.RawMessage
	for k, v := range keyed {
		name, payload = k, v
	}

	step := Step{Name: name}
	var err error
	switch name {
	case "send":
		step.Send, err = decodePayload[SendStep](payload)
	case "type":
		step.Type, err = decodePayload[TypeStep](payload)
	case "press":
		step.Press, err = decodePayload[PressStep](payload)
	case "click":
		step.Click, err = decodePayload[ClickStep](payload)
	case "drag":
		step.Drag, err = decodePayload[DragStep](payload)
	case "scroll":
		step.Scroll, err = decodePayload[ScrollStep](payload)
	case "wait_text":
		step.WaitText, err = decodePayload[WaitTextStep](payload)
	case "wait_prompt":
		step.WaitPrompt, err = decodePayload[WaitPromptStep](payload)
	case "wait_idle":
		step.WaitIdle, err = decodePayload[WaitIdleStep](payload)
	case "expect_contain":
		step.ExpectContain, err = decodePayload[ExpectContainStep](payload)
	case "expect_absent":
		step.ExpectAbsent, err = decodePayload[ExpectAbsentStep](payload)
	case "resize":
		step.Resize, err = decodePayload[ResizeStep](payload)
	case "focus":
		step.Focus, err = decodePayload[FocusStep](payload)
	case "screenshot":
		step.Screenshot, err = decodePayload[ScreenshotStep](payload)
	case "sleep":
		step.Sleep, err = decodePayload[SleepStep](payload)
	default:
		return Step{}, fmt.Errorf("unknown action %q", name)
	}
	if err != nil {
		return Step{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := step.validate(); err != nil {
		return Step{}, fmt.Errorf("%s: %w", name, err)
	}
	return step, nil
}

// decodePayload strictly decodes an action payload: unknown fields
// are validation errors, not noise to ignore.
func decodePayload[T any](raw json.RawMessage) (*T, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var payload T
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// validate applies the per-action field constraints.
func (s Step) validate() error {
	switch {
	case s.Send != nil:
		if s.Send.Text == "" {
			return fmt.Errorf("text is required")
		}
	case s.Type != nil:
		if s.Type.Text == "" {
			return fmt.Errorf("text is required")
		}
		if s.Type.DelayMS < 0 {
			return fmt.Errorf("delay_ms must not be negative")
		}
	case s.Press != nil:
		if s.Press.Key == "" {
			return fmt.Errorf("key is required")
		}
	case s.Drag != nil:
		if s.Drag.Steps < 0 {
			return fmt.Errorf("steps must not be negative")
		}
	case s.WaitText != nil:
		if s.WaitText.Text == "" {
			return fmt.Errorf("text is required")
		}
	case s.ExpectContain != nil:
		if s.ExpectContain.Text == "" {
			return fmt.Errorf("text is required")
		}
	case s.ExpectAbsent != nil:
		if s.ExpectAbsent.Text == "" {
			return fmt.Errorf("text is required")
		}
	case s.Resize != nil:
		if s.Resize.Rows == 0 && s.Resize.Cols == 0 {
			return fmt.Errorf("rows or cols is required")
		}
		if s.Resize.Rows < 0 || s.Resize.Cols < 0 {
			return fmt.Errorf("rows and cols must not be negative")
		}
	case s.Screenshot != nil:
		if s.Screenshot.Path == "" {
			return fmt.Errorf("path is required")
		}
	case s.Sleep != nil:
		if s.Sleep.MS <= 0 {
			return fmt.Errorf("ms must be positive")
		}
	}
	return nil
}
