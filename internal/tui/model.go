// Package tui is the terminal front-end: a bubbletea program that shows one
// word at a time and splits its romaji prompt as the player types.
package tui

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/typeflow/typeflow/internal/db"
	"github.com/typeflow/typeflow/internal/game"
	"github.com/typeflow/typeflow/internal/prefs"
	"github.com/typeflow/typeflow/internal/words"
)

// Below either size the full layout no longer fits, so minimal mode is forced.
const (
	MinimalWidth  = 60
	MinimalHeight = 16
)

const saveTimeout = 5 * time.Second

// Settings is the preference cache the UI reads and toggles.
type Settings interface {
	Bool(key string, def bool) bool
	SetBool(ctx context.Context, key string, value bool) error
}

// ResultSaver persists finished games.
type ResultSaver interface {
	CreateResult(ctx context.Context, arg db.CreateResultParams) (db.Result, error)
}

type screen int

const (
	screenPlaying screen = iota
	screenResults
)

type Config struct {
	Words     words.List
	WordCount int
	Player    string
	Settings  Settings
	Results   ResultSaver
	Log       *slog.Logger
	Rand      *rand.Rand
	// Now replaces time.Now in tests.
	Now func() time.Time
}

type Model struct {
	cfg   Config
	state *game.State

	screen  screen
	forced  bool
	minimal bool
	width   int
	height  int

	last    game.Outcome
	result  game.Result
	saved   *db.Result
	saveErr error

	keys     keyMap
	help     help.Model
	progress progress.Model
}

type resultSavedMsg struct {
	result db.Result
	err    error
}

type prefSavedMsg struct {
	err error
}

func New(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(uint64(cfg.Now().UnixNano()), 0))
	}
	forced := false
	if cfg.Settings != nil {
		forced = cfg.Settings.Bool(prefs.KeyMinimalMode, false)
	}
	m := Model{
		cfg:      cfg,
		forced:   forced,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.state = game.New(cfg.Words.Pick(cfg.WordCount, cfg.Rand), game.WithClock(cfg.Now))
	m.minimal = m.computeMinimal()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Minimal reports whether the work-safe layout is active.
func (m Model) Minimal() bool {
	return m.minimal
}

// State exposes the running game.
func (m Model) State() *game.State {
	return m.state
}

// computeMinimal derives the layout from the toggle and the last known size.
// An unknown size (zero) does not force minimal mode.
func (m Model) computeMinimal() bool {
	if m.forced {
		return true
	}
	if m.width == 0 && m.height == 0 {
		return false
	}
	return m.width < MinimalWidth || m.height < MinimalHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.minimal = m.computeMinimal()
		m.help.Width = msg.Width
		m.progress.Width = max(min(msg.Width-4, 60), 10)
		return m, nil

	case resultSavedMsg:
		if msg.err != nil {
			m.saveErr = msg.err
			m.cfg.Log.Error("saving result", "error", msg.err)
			return m, nil
		}
		m.saved = &msg.result
		m.cfg.Log.Info("result saved", "id", msg.result.ID, "kpm", msg.result.Kpm)
		return m, nil

	case prefSavedMsg:
		if msg.err != nil {
			m.cfg.Log.Warn("saving minimal mode", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		m.forced = !m.forced
		m.minimal = m.computeMinimal()
		return m, m.saveMinimal(m.forced)
	}

	if m.screen == screenResults {
		if key.Matches(msg, m.keys.Restart) {
			return m.restart(), nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Skip):
		m.state.Skip()
		m.last = game.Ignored
		if m.state.Finished() {
			return m.finish()
		}
		return m, nil

	case key.Matches(msg, m.keys.Backspace):
		m.state.Backspace()
		return m, nil
	}

	if msg.Type != tea.KeyRunes {
		return m, nil
	}
	for _, r := range msg.Runes {
		m.last = m.state.Type(string(r))
		if m.last == game.GameComplete {
			return m.finish()
		}
	}
	return m, nil
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.screen = screenResults
	m.keys.Restart.SetEnabled(true)
	m.keys.Skip.SetEnabled(false)
	m.keys.Backspace.SetEnabled(false)
	m.result = m.state.Result(m.cfg.Player)
	m.cfg.Log.Info("game finished",
		"player", m.result.Player,
		"words", m.result.Words,
		"kpm", m.result.KPM(),
		"accuracy", m.result.Accuracy(),
	)
	return m, m.saveResult(m.result)
}

func (m Model) restart() Model {
	m.state.Reset(m.cfg.Words.Pick(m.cfg.WordCount, m.cfg.Rand))
	m.screen = screenPlaying
	m.keys.Restart.SetEnabled(false)
	m.keys.Skip.SetEnabled(true)
	m.keys.Backspace.SetEnabled(true)
	m.last = game.Ignored
	m.result = game.Result{}
	m.saved = nil
	m.saveErr = nil
	return m
}

func (m Model) saveResult(r game.Result) tea.Cmd {
	if m.cfg.Results == nil || r.Keystrokes == 0 {
		return nil
	}
	store := m.cfg.Results
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		res, err := store.CreateResult(ctx, r.CreateParams())
		return resultSavedMsg{result: res, err: err}
	}
}

func (m Model) saveMinimal(v bool) tea.Cmd {
	if m.cfg.Settings == nil {
		return nil
	}
	settings := m.cfg.Settings
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return prefSavedMsg{err: settings.SetBool(ctx, prefs.KeyMinimalMode, v)}
	}
}

// Run starts the program on the terminal and blocks until the player quits.
func Run(cfg Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}
