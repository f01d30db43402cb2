// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ghostctl/ghostctl/ghostty"
	"github.com/ghostctl/ghostctl/screen"
)

// DefaultInterval is the poll interval when the config does not set
// one.
const DefaultInterval = 500 * time.Millisecond

// Config wires a Model to a Ghostty host.
type Config struct {
	// Client is the connection the view polls over.
	Client *ghostty.Client

	// Resolve picks the surface to watch first. Nil means the focused
	// surface, falling back to the first listed.
	Resolve func(context.Context, *ghostty.Client) (*ghostty.Terminal, error)

	// Interval is the poll cadence. Zero means DefaultInterval.
	Interval time.Duration

	// Theme and Keys default to DefaultTheme and DefaultKeyMap when
	// zero.
	Theme Theme
	Keys  KeyMap
}

// connectResultMsg reports the initial target resolution.
type connectResultMsg struct {
	term *ghostty.Terminal
	err  error
}

// captureMsg carries one poll result: the screen plus the surface
// metadata snapshot taken in the same round trip.
type captureMsg struct {
	scr     screen.Screen
	surface ghostty.Surface
	at      time.Time
	err     error
}

// pollTickMsg fires when the next poll is due.
type pollTickMsg struct{}

// switchResultMsg reports a surface cycle triggered by NextSurface.
type switchResultMsg struct {
	term *ghostty.Terminal
	err  error
}

// Model is the bubbletea model for the watch view.
type Model struct {
	client   *ghostty.Client
	resolve  func(context.Context, *ghostty.Client) (*ghostty.Terminal, error)
	interval time.Duration
	theme    Theme
	keys     KeyMap

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool

	term        *ghostty.Terminal
	surface     ghostty.Surface
	connected   bool
	paused      bool
	lastCapture time.Time
	statusErr   string

	fatal error
}

// NewModel builds a watch model from cfg.
func NewModel(cfg Config) Model {
	theme := cfg.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	keys := cfg.Keys
	if !keys.Quit.Enabled() {
		keys = DefaultKeyMap
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	resolve := cfg.Resolve
	if resolve == nil {
		resolve = defaultResolve
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.FocusMarker)

	return Model{
		client:   cfg.Client,
		resolve:  resolve,
		interval: interval,
		theme:    theme,
		keys:     keys,
		spinner:  sp,
	}
}

// Err returns the error that ended the program, nil after a clean
// quit. The watch command checks it after Run.
func (m Model) Err() error { return m.fatal }

func defaultResolve(ctx context.Context, client *ghostty.Client) (*ghostty.Terminal, error) {
	term, err := client.Terminals().Focused(ctx)
	if err != nil || term != nil {
		return term, err
	}
	return client.Terminals().First(ctx)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, connectCmd(m.client, m.resolve))
}

func connectCmd(client *ghostty.Client, resolve func(context.Context, *ghostty.Client) (*ghostty.Terminal, error)) tea.Cmd {
	return func() tea.Msg {
		term, err := resolve(context.Background(), client)
		if err == nil && term == nil {
			err = ghostty.ErrNoSurfaces
		}
		return connectResultMsg{term: term, err: err}
	}
}

// captureCmd refreshes the surface snapshot and fetches the viewport
// in one poll round.
func captureCmd(term *ghostty.Terminal) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := term.Refresh(ctx); err != nil {
			return captureMsg{err: err}
		}
		scr, err := term.Screen(ctx, ghostty.Viewport)
		if err != nil {
			return captureMsg{err: err}
		}
		return captureMsg{scr: scr, surface: term.Surface(), at: time.Now()}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func nextSurfaceCmd(client *ghostty.Client, currentID string) tea.Cmd {
	return func() tea.Msg {
		terms, err := client.Terminals().All(context.Background())
		if err != nil {
			return switchResultMsg{err: err}
		}
		if len(terms) == 0 {
			return switchResultMsg{err: ghostty.ErrNoSurfaces}
		}
		next := terms[0]
		for i, t := range terms {
			if t.ID() == currentID {
				next = terms[(i+1)%len(terms)]
				break
			}
		}
		return switchResultMsg{term: next}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header, status bar, and the frame's two border rows.
		contentWidth := max(msg.Width-2, 1)
		contentHeight := max(msg.Height-4, 1)
		if !m.ready {
			m.viewport = viewport.New(contentWidth, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = contentHeight
		}
		return m, nil

	case spinner.TickMsg:
		if m.connected {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectResultMsg:
		if msg.err != nil {
			m.fatal = msg.err
			return m, tea.Quit
		}
		m.term = msg.term
		m.connected = true
		return m, captureCmd(m.term)

	case switchResultMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
			return m, nil
		}
		m.term = msg.term
		return m, captureCmd(m.term)

	case captureMsg:
		if msg.err != nil {
			if errors.Is(msg.err, ghostty.ErrSurfaceGone) {
				m.statusErr = "surface closed"
			} else {
				m.statusErr = msg.err.Error()
			}
		} else {
			m.statusErr = ""
			m.surface = msg.surface
			m.lastCapture = msg.at
			m.viewport.SetContent(m.renderScreen(msg.scr))
		}
		if m.paused {
			return m, nil
		}
		return m, m.tickCmd()

	case pollTickMsg:
		if !m.connected || m.paused {
			return m, nil
		}
		return m, captureCmd(m.term)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && m.connected {
				return m, captureCmd(m.term)
			}
			return m, nil
		case key.Matches(msg, m.keys.NextSurface):
			if !m.connected {
				return m, nil
			}
			return m, nextSurfaceCmd(m.client, m.term.ID())
		}
	}

	// Everything else (scroll keys, mouse wheel) drives the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderScreen prepares captured content for display: escapes
// stripped so the capture cannot corrupt the watch chrome, lines
// truncated to the content width by display width.
func (m Model) renderScreen(scr screen.Screen) string {
	lines := strings.Split(scr.PlainText(), "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.viewport.Width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.fatal != nil {
		return ""
	}
	if !m.ready || !m.connected {
		return fmt.Sprintf("\n %s connecting to Ghostty…\n", m.spinner.View())
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Width(m.viewport.Width)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		frame.Render(m.viewport.View()),
		m.statusView(),
	)
}

func (m Model) headerView() string {
	header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	title := m.surface.Title
	if title == "" {
		title = "(untitled)"
	}
	focus := ""
	if m.surface.Focused {
		focus = lipgloss.NewStyle().Foreground(m.theme.FocusMarker).Render(" ●")
	}
	line := header.Render(title) + focus +
		faint.Render(fmt.Sprintf("  %s  %dx%d", m.surface.ID, m.surface.Rows, m.surface.Cols))
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) statusView() string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var state string
	switch {
	case m.statusErr != "":
		state = lipgloss.NewStyle().Foreground(m.theme.ErrorColor).Render(m.statusErr)
	case m.paused:
		state = lipgloss.NewStyle().Foreground(m.theme.PausedColor).Render("paused")
	default:
		state = faint.Render(fmt.Sprintf("live %s", m.interval))
	}
	if !m.lastCapture.IsZero() {
		state += faint.Render("  " + m.lastCapture.Format("15:04:05"))
	}
	help := faint.Render("  q quit · p pause · tab next surface")
	return ansi.Truncate(state+help, m.width, "…")
}
