// Package match3 provides the match-3 tile puzzle for the platform: a
// campaign of levels with color and stone objectives, and an endless score
// attack. Board rules live in the core subpackage.
package match3

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Game implements registry.Game on top of a Session.
type Game struct {
	mode     Mode
	cfg      config.Config
	logger   *log.Logger
	start    int
	startSet bool
	seed     int64

	manager *levels.Manager
	session *Session
	loadErr error

	// Selection state
	cursor    core.Coord
	selected  bool
	selection core.Coord
	hint      core.Move
	showHint  bool
	message   string

	anim animation

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	tick     uint64
}

func init() {
	registry.Register(ModeCampaign.GameID(), func() registry.Game {
		return New()
	})
	registry.Register(ModeEndless.GameID(), func() registry.Game {
		return NewEndless()
	})
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless score attack game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// SelectLevel makes the next Reset start at the given campaign index,
// overriding SetStartLevel.
func (g *Game) SelectLevel(index int) *Game {
	g.start = index
	g.startSet = true
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Reset loads the configured campaign (or an endless board) and starts play.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	var start int
	g.cfg, g.logger, start = settings()
	if !g.startSet {
		g.start = start
	}
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.loadErr = nil
	g.session = nil

	if g.mode == ModeCampaign {
		lvls, err := Campaign()
		if err == nil && len(lvls) == 0 {
			err = errors.New("campaign has no levels")
		}
		if err != nil {
			g.loadErr = err
			g.logger.Error("cannot load campaign", "err", err)
			return
		}
		g.manager = levels.NewManager(lvls)
		g.manager.StartAt(g.start)
	}
	g.startLevel()
}

// Resize adapts the layout without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

func (g *Game) startLevel() {
	var l levels.Level
	if g.mode == ModeEndless {
		l = EndlessLevel(g.cfg, g.seed)
	} else {
		l, _ = g.manager.Current()
	}

	s, err := NewSession(l, SessionOptions{
		Mode:   g.mode,
		Config: g.cfg,
		Seed:   g.seed,
		Logger: g.logger,
		Frames: true,
	})
	if err != nil {
		g.loadErr = err
		g.session = nil
		g.logger.Error("cannot start level", "level", l.ID, "err", err)
		return
	}

	g.session = s
	g.cursor = core.C(l.Width/2, l.Height/2)
	g.selected = false
	g.showHint = false
	g.message = ""
	g.anim.reset()
	g.checkScreenSize()
}

// checkScreenSize checks if the board and HUD fit.
func (g *Game) checkScreenSize() {
	if g.session == nil {
		g.tooSmall = false
		return
	}
	l := g.session.Level()
	minW := platformcore.Max(l.Width*cellW+2, 44)
	minH := l.Height + 2 + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Session returns the current run, or nil when no level could be loaded.
func (g *Game) Session() *Session { return g.session }

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Coord { return g.cursor }

// Selection returns the selected cell, if any.
func (g *Game) Selection() (core.Coord, bool) { return g.selection, g.selected }

// Message returns the status line.
func (g *Game) Message() string { return g.message }

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.session == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	// Input is ignored while a move resolves on screen
	if g.anim.playing() {
		g.anim.advance()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}

	if g.session.Over() {
		if in.Has(platformcore.ActionNext) && g.session.Won() && g.mode == ModeCampaign {
			g.manager.NextOrWrap()
			g.startLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(0, 1)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(platformcore.ActionCancel) {
		g.selected = false
	}
	if in.Has(platformcore.ActionHint) {
		g.toggleHint()
	}
	if in.Has(platformcore.ActionSelect) {
		g.selectCell()
	}
}

// moveCursor moves the cursor, clamped to the board. Up is toward higher rows.
func (g *Game) moveCursor(dx, dy int) {
	grid := g.session.Board().Grid()
	g.cursor = core.C(
		platformcore.Clamp(g.cursor.X+dx, 0, grid.W-1),
		platformcore.Clamp(g.cursor.Y+dy, 0, grid.H-1),
	)
}

func (g *Game) toggleHint() {
	if g.showHint {
		g.showHint = false
		return
	}
	m, ok := g.session.Hint()
	if !ok {
		g.message = "No moves available"
		return
	}
	g.hint = m
	g.showHint = true
}

// selectCell picks the cell under the cursor, or swaps it with the
// selection when the two are neighbors.
func (g *Game) selectCell() {
	grid := g.session.Board().Grid()
	switch {
	case !g.selected:
		if grid.Get(g.cursor).Stone {
			g.message = "Stones cannot be moved"
			return
		}
		g.selected = true
		g.selection = g.cursor
		g.message = ""
	case g.selection == g.cursor:
		g.selected = false
	case g.selection.Adjacent(g.cursor):
		g.trySwap(g.selection, g.cursor)
	default:
		g.selection = g.cursor
	}
}

func (g *Game) trySwap(a, b core.Coord) {
	before := g.session.Board().Snapshot()
	out, err := g.session.Swap(a, b)
	g.selected = false
	if err != nil {
		g.message = err.Error()
		return
	}
	if !out.Swap.Valid() {
		g.message = swapMessage(out.Swap.Reason)
		return
	}

	g.showHint = false
	g.anim.load(before, core.Move{A: a, B: b}, out.Cascade.Steps, g.cfg.Display.StepDelayTicks)

	switch {
	case out.Reshuffled:
		g.message = "No moves left, board reshuffled"
	case out.Cascade.Depth() > 1:
		g.message = fmt.Sprintf("+%d  cascade x%d", out.Points, out.Cascade.Depth())
	default:
		g.message = fmt.Sprintf("+%d", out.Points)
	}
}

func swapMessage(r core.SwapReason) string {
	switch r {
	case core.ReasonNotAdjacent:
		return "Tiles must be neighbors"
	case core.ReasonStoneEndpoint:
		return "Stones cannot be moved"
	case core.ReasonSameColor:
		return "Same color, nothing to swap"
	default:
		return "No match"
	}
}

func (g *Game) restart() {
	g.seed++
	if g.manager != nil {
		g.manager.Restart()
	}
	g.startLevel()
}

// State returns the current game state. A run only counts as over once its
// last move has finished playing.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true}
	}
	busy := g.anim.playing()
	return platformcore.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Over() && !busy,
		Won:      g.session.Won() && !busy,
		Busy:     busy,
	}
}

// RunResult returns the finished run once it is over.
func (g *Game) RunResult() (Result, bool) {
	st := g.State()
	if g.session == nil || !st.GameOver {
		return Result{}, false
	}
	return g.session.Result(), true
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Space: Select | Esc: Cancel | H: Hint | R: Restart | Q: Quit"
}
