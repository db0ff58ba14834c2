package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Options carries the host services shared by every screen.
// Zero values are usable: no store, discarded logs, default bindings.
type Options struct {
	Store     *storage.Store
	Logger    *log.Logger
	Keys      *KeyMapper
	HoldTicks int
	Painter   *Painter
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Keys == nil {
		o.Keys = DefaultKeyMapper()
	}
	if o.HoldTicks < 1 {
		o.HoldTicks = core.DefaultHoldTicks
	}
	if o.Painter == nil {
		o.Painter = NewPainter(nil)
	}
	return o
}

// GameModel runs one game: it turns key presses into latched input,
// steps the game at a fixed rate and saves the score when a run ends.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	latch     *core.InputLatch
	help      help.Model
	helpKeys  GameKeyMap
	gameState core.GameState
	view      string // last painted playfield
	dirty     bool
	gen       uint64 // tick loop generation

	standalone bool // back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // score already saved for the current game over
}

// NewGameModel creates a host model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	opts = opts.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		opts:     opts,
		config:   cfg,
		latch:    core.NewInputLatch(opts.HoldTicks),
		help:     h,
		helpKeys: opts.Keys.GameKeys(),
		dirty:    true,
		gen:      nextTickGen(),
	}
}

// playHeight leaves the last terminal row for the key help.
func playHeight(h int) int {
	return max(h-1, 0)
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate, m.gen)
}

// start resets the game for a new run. The latch and game are pointers, so
// this works from value receivers.
func (m *GameModel) start() {
	m.game.Reset(m.config)
	m.latch.Reset()
	m.refreshBest()
	m.opts.Logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
}

func (m *GameModel) refreshBest() {
	bs, ok := m.game.(registry.BestScorer)
	if !ok || m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("could not load high score", "game", m.game.ID(), "error", err)
		return
	}
	bs.SetBest(best)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		m.dirty = true
		m.repaint()
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.opts.Keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case action != core.ActionNone:
		m.latch.Press(action)
	}
	return m, nil
}

// handleTick processes one simulation tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	frame := m.latch.Sample()

	if frame.JustPressed(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.dirty = true
		m.repaint()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(frame)
	prev := m.gameState
	m.gameState = result.State
	m.logEvents(result.Events)

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
	if prev != m.gameState {
		m.dirty = true
	}
	m.repaint()

	return m, tickCmd(m.config.TickRate, m.gen)
}

func (m *GameModel) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventSpawn:
			m.opts.Logger.Debug("spawn", "piece", e.Piece)
		case core.EventLock:
			m.opts.Logger.Debug("lock", "piece", e.Piece, "lines", e.Lines, "points", e.Score)
		case core.EventGameOver:
			m.opts.Logger.Info("game over", "game", m.game.ID(), "score", e.Score)
		}
	}
}

// saveScore records the finished run. Failures are logged and play
// continues.
func (m *GameModel) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	run := storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Seed:   m.config.Seed,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		sum := s.Summary()
		run.Lines, run.Pieces = sum.Lines, sum.Pieces
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Error("could not save score", "game", run.GameID, "score", run.Score, "error", err)
		return
	}
	m.refreshBest()
}

// saveScreenshot writes the current frame as plain text to
// ~/.blocks/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// repaint re-renders the playfield when the game reports a change or the
// host marked the frame dirty.
func (m *GameModel) repaint() {
	changed := m.dirty
	if r, ok := m.game.(registry.Redrawer); ok {
		changed = r.TakeRedraw() || changed
	} else {
		changed = true
	}
	if !changed && m.view != "" {
		return
	}
	m.game.Render(m.screen)
	m.view = m.opts.Painter.Paint(m.screen)
	m.dirty = false
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	view := m.view
	if view == "" {
		m.game.Render(m.screen)
		view = m.opts.Painter.Paint(m.screen)
	}
	return view + "\n" + m.help.View(m.helpKeys)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the current terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
