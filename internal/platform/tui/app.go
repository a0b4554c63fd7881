package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenLevels
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> level select -> game -> menu.
// It is the top-level model of both the local menu and SSH sessions.
type AppModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	logger   *log.Logger
	painter  *Painter
	screen   screenKind
	menu     MenuModel
	levels   LevelMenuModel
	scores   ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewAppModel creates the application model starting at the main menu.
func NewAppModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) AppModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return AppModel{
		store:   store,
		config:  cfg,
		logger:  logger,
		painter: NewPainter(nil),
		menu:    NewMenuModel(store, cfg.ScreenW, cfg.ScreenH),
	}
}

// WithPainter sets the renderer-bound painter used by games.
func (m AppModel) WithPainter(p *Painter) AppModel {
	m.painter = p
	return m
}

// Init initializes the application.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceCampaign:
		return m.startGame(match3.New())
	case ChoiceEndless:
		return m.startGame(match3.NewEndless())
	case ChoiceLevels:
		lvls, err := match3.Campaign()
		if err != nil {
			m.logger.Error("cannot load campaign", "err", err)
		}
		m.levels = NewLevelMenuModel(lvls, m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevels
		return m, m.levels.Init()
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}
	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	m.levels = next.(LevelMenuModel)

	switch {
	case m.levels.Quitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.GoingBack():
		return m.backToMenu()
	}
	if index, ok := m.levels.Chosen(); ok {
		return m.startGame(match3.New().SelectLevel(index))
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) startGame(g registry.Game) (tea.Model, tea.Cmd) {
	gm := NewGameModel(g, m.store, m.config).WithPainter(m.painter).WithLogger(m.logger)
	m.game = &gm
	m.screen = screenGame
	m.logger.Debug("game started", "game", g.ID())
	return m, gm.Init()
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunMenu runs the interactive menu until the user quits.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(NewAppModel(store, cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
