package match3_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func runtimeConfig() platformcore.RuntimeConfig {
	cfg := platformcore.DefaultConfig()
	cfg.ScreenH = 30
	cfg.Seed = 11
	return cfg
}

func newGame(t *testing.T, lvls ...levels.Level) *match3.Game {
	t.Helper()
	match3.SetLevels(lvls)
	t.Cleanup(func() { match3.SetLevels(nil) })

	g := match3.New()
	g.Reset(runtimeConfig())
	require.NotNil(t, g.Session())
	return g
}

func step(g *match3.Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.NewInputFrame(actions...))
}

// moveTo walks the cursor to target one step at a time.
func moveTo(t *testing.T, g *match3.Game, target core.Coord) {
	t.Helper()
	for i := 0; i < 100 && g.Cursor() != target; i++ {
		c := g.Cursor()
		switch {
		case c.X < target.X:
			step(g, platformcore.ActionRight)
		case c.X > target.X:
			step(g, platformcore.ActionLeft)
		case c.Y < target.Y:
			step(g, platformcore.ActionUp)
		default:
			step(g, platformcore.ActionDown)
		}
	}
	require.Equal(t, target, g.Cursor())
}

func TestGamesAreRegistered(t *testing.T) {
	assert.True(t, registry.Exists("match3"))
	assert.True(t, registry.Exists("match3_endless"))

	g, err := registry.Create("match3_endless")
	require.NoError(t, err)
	assert.Equal(t, "Match-3 (Endless)", g.Title())
}

func TestCursorIsClamped(t *testing.T) {
	g := newGame(t, testLevel())
	assert.Equal(t, core.C(3, 3), g.Cursor(), "cursor starts in the middle")

	for i := 0; i < 10; i++ {
		step(g, platformcore.ActionUp)
		step(g, platformcore.ActionLeft)
	}
	assert.Equal(t, core.C(0, 6), g.Cursor(), "up is toward the top row")

	for i := 0; i < 10; i++ {
		step(g, platformcore.ActionDown)
		step(g, platformcore.ActionRight)
	}
	assert.Equal(t, core.C(6, 0), g.Cursor())
}

func TestSelection(t *testing.T) {
	g := newGame(t, testLevel())

	step(g, platformcore.ActionSelect)
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.Equal(t, core.C(3, 3), sel)

	step(g, platformcore.ActionSelect)
	_, ok = g.Selection()
	assert.False(t, ok, "selecting the same cell deselects")

	step(g, platformcore.ActionSelect)
	moveTo(t, g, core.C(5, 3))
	step(g, platformcore.ActionSelect)
	sel, ok = g.Selection()
	require.True(t, ok)
	assert.Equal(t, core.C(5, 3), sel, "a distant cell moves the selection")

	step(g, platformcore.ActionCancel)
	_, ok = g.Selection()
	assert.False(t, ok)
}

func TestStonesCannotBeSelected(t *testing.T) {
	l := testLevel()
	l.Stones = []core.Coord{core.C(3, 3)}
	g := newGame(t, l)

	step(g, platformcore.ActionSelect)
	_, ok := g.Selection()
	assert.False(t, ok)
	assert.Equal(t, "Stones cannot be moved", g.Message())
}

func TestSwapPlaysCascadeFrames(t *testing.T) {
	g := newGame(t, testLevel())
	s := g.Session()

	m, ok := s.Hint()
	require.True(t, ok)

	moveTo(t, g, m.A)
	step(g, platformcore.ActionSelect)
	moveTo(t, g, m.B)
	res := step(g, platformcore.ActionSelect)

	assert.True(t, res.State.Busy, "the move is animated")
	assert.Equal(t, 1, s.Tracker().MovesUsed())
	assert.Positive(t, res.State.Score)

	// Input is ignored until the frames finish
	cursor := g.Cursor()
	for i := 0; i < 1000 && g.State().Busy; i++ {
		step(g, platformcore.ActionLeft)
	}
	assert.False(t, g.State().Busy)
	assert.Equal(t, cursor, g.Cursor())
}

func TestHintToggle(t *testing.T) {
	g := newGame(t, testLevel())
	step(g, platformcore.ActionHint)

	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)

	step(g, platformcore.ActionHint)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Moves: 20")
}

func TestRestartResetsRun(t *testing.T) {
	g := newGame(t, testLevel())
	first := g.Session().ID()

	m, _ := g.Session().Hint()
	_, err := g.Session().Swap(m.A, m.B)
	require.NoError(t, err)

	step(g, platformcore.ActionRestart)
	assert.NotEqual(t, first, g.Session().ID())
	assert.Equal(t, 0, g.Session().Tracker().MovesUsed())
}

func TestWinAdvancesToNextLevel(t *testing.T) {
	second := testLevel()
	second.ID = "second"
	second.Number = 2
	g := newGame(t, testLevel(), second)

	s := g.Session()
	for !s.Over() {
		m, ok := s.Hint()
		require.True(t, ok)
		_, err := s.Swap(m.A, m.B)
		require.NoError(t, err)
	}
	require.True(t, s.Won())

	st := step(g).State
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)

	res, ok := g.RunResult()
	require.True(t, ok)
	assert.Equal(t, "test", res.LevelID)
	assert.Equal(t, "match3", res.GameID)

	step(g, platformcore.ActionNext)
	assert.Equal(t, "second", g.Session().Level().ID)
	assert.False(t, g.State().GameOver)
}

func TestSelectLevelOverridesStart(t *testing.T) {
	second := testLevel()
	second.ID = "second"
	match3.SetLevels([]levels.Level{testLevel(), second})
	t.Cleanup(func() { match3.SetLevels(nil) })

	g := match3.New().SelectLevel(1)
	g.Reset(runtimeConfig())
	assert.Equal(t, "second", g.Session().Level().ID)
}

func TestEmbeddedCampaignStarts(t *testing.T) {
	g := match3.New()
	g.Reset(runtimeConfig())
	require.NotNil(t, g.Session())
	assert.Equal(t, 1, g.Session().Level().Number)
}

func TestRenderShowsHUDAndBoard(t *testing.T) {
	g := newGame(t, testLevel())

	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Match-3  1. Test")
	assert.Contains(t, out, "Moves: 20")
	assert.Contains(t, out, "red 0/1")
	assert.Equal(t, 7*7, strings.Count(out, "●"))
	assert.Contains(t, out, "[")
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, testLevel())
	g.Resize(20, 10)

	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}
