// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/ghostctl/ghostctl/cmd/ghostctl/cli"
	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/screen"
)

type screenParams struct {
	cli.TargetConfig
	cli.JSONOutput
	Plain      bool `json:"plain" flag:"plain" desc:"strip ANSI escape sequences from the text"`
	Cells      bool `json:"cells" flag:"cells" desc:"emit the structured cell document as JSON"`
	Styled     bool `json:"styled" flag:"styled" desc:"re-render styled cells for the local terminal"`
	Scrollback bool `json:"scrollback" flag:"scrollback" desc:"include scrollback history, not just the viewport"`
}

type screenOutput struct {
	Text    string `json:"text" desc:"screen content"`
	CursorX int    `json:"cursor_x" desc:"cursor column"`
	CursorY int    `json:"cursor_y" desc:"cursor row"`
}

// ScreenCommand returns the "screen" command.
func ScreenCommand() *cli.Command {
	var params screenParams

	return &cli.Command{
		Name:    "screen",
		Summary: "Capture terminal screen content",
		Description: `Capture the target terminal's screen. The default rendering is the
raw text the host returns, escape sequences included. --plain strips
escapes, --cells emits the structured cell document as JSON, and
--styled re-renders the cells with their colors and attributes for
the local terminal.`,
		Usage: "ghostctl screen [flags]",
		Examples: []cli.Example{
			{Description: "Print the visible screen as plain text", Command: "ghostctl screen --plain"},
			{Description: "Dump styled cells for a picked surface", Command: "ghostctl screen --pick vim --cells"},
			{Description: "Include scrollback history", Command: "ghostctl screen --plain --scrollback"},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &screenOutput{} },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			modes := 0
			for _, on := range []bool{params.Plain, params.Cells, params.Styled} {
				if on {
					modes++
				}
			}
			if modes > 1 {
				return cli.Validation("--plain, --cells, and --styled are mutually exclusive")
			}
			kind := ghostty.Viewport
			if params.Scrollback {
				kind = ghostty.Scrollback
			}
			ctx := context.Background()
			term, err := params.Terminal(ctx)
			if err != nil {
				return err
			}
			if params.Cells || params.Styled {
				cells, err := term.Cells(ctx, kind)
				if err != nil {
					return cli.ClassifyError(err)
				}
				if params.Cells {
					return cli.WriteJSON(cells)
				}
				renderStyled(termenv.NewOutput(os.Stdout), cells)
				return nil
			}
			scr, err := term.Screen(ctx, kind)
			if err != nil {
				return cli.ClassifyError(err)
			}
			text := scr.Text
			if params.Plain {
				text = scr.PlainText()
			}
			out := screenOutput{Text: text, CursorX: scr.CursorX, CursorY: scr.CursorY}
			if done, err := params.EmitJSON(out); done {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

// renderStyled prints one line per row, re-applying each span's colors
// and attributes with the local terminal's color profile. Gaps between
// spans render as spaces.
func renderStyled(out *termenv.Output, cells *screen.ScreenCells) {
	for _, row := range cells.Rows {
		var line strings.Builder
		x := 0
		for _, span := range row.Spans {
			if span.X > x {
				line.WriteString(strings.Repeat(" ", span.X-x))
			}
			line.WriteString(styleSpan(out, span).String())
			x = span.X + span.Width()
		}
		fmt.Fprintln(out, line.String())
	}
}

func styleSpan(out *termenv.Output, span screen.Span) termenv.Style {
	st := out.String(span.Text)
	if c := termColor(out, span.FG); c != nil {
		st = st.Foreground(c)
	}
	if c := termColor(out, span.BG); c != nil {
		st = st.Background(c)
	}
	if span.Bold {
		st = st.Bold()
	}
	if span.Italic {
		st = st.Italic()
	}
	if span.Faint {
		st = st.Faint()
	}
	if span.Strikethrough {
		st = st.CrossOut()
	}
	if span.Inverse {
		st = st.Reverse()
	}
	if span.Underline != "" && span.Underline != screen.UnderlineNone {
		st = st.Underline()
	}
	return st
}

// termColor translates a canonical color string ("palette(N)" or
// "rgb(r,g,b)") into the closest color the local profile supports.
// Unset or unrecognized colors return nil.
func termColor(out *termenv.Output, canonical string) termenv.Color {
	if canonical == "" {
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(canonical, "palette(%d)", &n); err == nil {
		return out.Color(fmt.Sprintf("%d", n))
	}
	var r, g, b int
	if _, err := fmt.Sscanf(canonical, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return out.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	}
	return nil
}
