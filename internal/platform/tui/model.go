package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// runReporter is implemented by games that produce a run record.
type runReporter interface {
	RunResult() (match3.Result, bool)
}

// resizer is implemented by games that can change layout without a reset.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	painter    *Painter
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       GameKeyMap
	gameState  core.GameState
	saved      bool // the finished run has been persisted
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. A zero seed is replaced by the clock.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(nil),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
	}
}

// WithPainter sets the renderer-bound painter, e.g. for an SSH session.
func (m GameModel) WithPainter(p *Painter) GameModel {
	m.painter = p
	return m
}

// WithLogger sets the logger.
func (m GameModel) WithLogger(l *log.Logger) GameModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizer); ok {
			r.Resize(msg.Width, msg.Height)
		} else if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey maps keys to actions for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	case core.ActionNone:
		return m, nil
	default:
		m.inputFrame.Set(action)
		return m, nil
	}
}

// handleTick advances the game and persists finished runs.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case !m.gameState.GameOver:
		m.saved = false
	case !m.saved:
		m.saveResult()
		m.saved = true
	}
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished run. Saving is best effort; the game
// continues when the database is unavailable.
func (m *GameModel) saveResult() {
	var run *match3.Result
	if rr, ok := m.game.(runReporter); ok {
		if res, ok := rr.RunResult(); ok {
			run = &res
		}
	}

	if run != nil {
		m.logger.Info("run finished",
			"game", run.GameID, "level", run.LevelID, "won", run.Won,
			"score", run.Score, "moves", run.MovesUsed, "cascade", run.MaxCascade)
	}
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("cannot save score", "err", err)
		}
	}
	if run != nil {
		if err := m.store.SaveRun(toStorageRun(*run)); err != nil {
			m.logger.Warn("cannot save run", "err", err)
		}
	}
}

func toStorageRun(r match3.Result) storage.Run {
	return storage.Run{
		RunID:        r.RunID,
		GameID:       r.GameID,
		LevelID:      r.LevelID,
		Won:          r.Won,
		MovesUsed:    r.MovesUsed,
		Score:        r.Score,
		StonesBroken: r.StonesBroken,
		MaxCascade:   r.MaxCascade,
		Seed:         r.Seed,
	}
}

// saveScreenshot writes the current screen as plain text under the data dir.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return m.painter.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts a single game in its own Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg).WithLogger(logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
