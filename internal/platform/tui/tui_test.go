package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("s"), core.ActionDown},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel},
		{runes("h"), core.ActionHint},
		{runes("?"), core.ActionHint},
		{runes("r"), core.ActionRestart},
		{runes("n"), core.ActionNext},
		{runes("b"), core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{runes("q"), core.ActionQuit},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keys.Action(tt.msg), "key %q", tt.msg.String())
	}
}

func TestMenuKeyMapActions(t *testing.T) {
	keys := DefaultMenuKeyMap()

	assert.Equal(t, MenuActionUp, keys.Action(runes("k")))
	assert.Equal(t, MenuActionDown, keys.Action(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, keys.Action(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionScores, keys.Action(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionBack, keys.Action(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionQuit, keys.Action(runes("q")))
}

func TestPainterPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.Clear()
	s.DrawText(0, 0, "abc")
	s.DrawText(1, 1, "de")

	out := NewPainter(nil).Render(s)
	assert.Equal(t, "abc  \n de  ", out)
}

func TestPainterKeepsText(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.Clear()
	s.DrawTextStyled(0, 0, "ab", core.Fg(core.ColorRed))
	s.DrawText(2, 0, "cd")

	out := NewPainter(nil).Render(s)
	assert.Contains(t, out, "ab")
	assert.True(t, strings.HasSuffix(out, "cd"))
}

func TestThemes(t *testing.T) {
	for _, name := range ThemeNames() {
		th, ok := ThemeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, th.Name)
		assert.Contains(t, th.Colors, core.ColorRed)
	}

	_, ok := ThemeByName("sepia")
	assert.False(t, ok)

	neon, _ := ThemeByName("neon")
	assert.NotEqual(t, DefaultTheme().Colors[core.ColorRed], neon.Colors[core.ColorRed])
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.Equal(t, ChoiceQuit, m.Choice(), "up from the top wraps to the last entry")

	m = NewMenuModel(nil, 80, 24)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.Equal(t, ChoiceEndless, m.Choice())

	assert.Contains(t, m.View(), "Select Level")
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.SaveScore(match3.ModeEndless.GameID(), 4321)
	require.NoError(t, err)

	m := NewMenuModel(store, 80, 24)
	assert.Contains(t, m.View(), "best 4321")
}

func TestLevelMenuChoose(t *testing.T) {
	lvls, err := match3.Campaign()
	require.NoError(t, err)
	require.Greater(t, len(lvls), 1)

	m := NewLevelMenuModel(lvls, nil, 100, 30)
	assert.Contains(t, m.View(), lvls[0].Name)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(LevelMenuModel)
	_, ok := m.Chosen()
	assert.False(t, ok)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelMenuModel)
	index, ok := m.Chosen()
	assert.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestScoreboardBoards(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.SaveScore(match3.ModeCampaign.GameID(), 700)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(storage.Run{RunID: "a", GameID: "match3", LevelID: "first-steps", Won: true, Score: 700}))
	require.NoError(t, store.SaveRun(storage.Run{RunID: "b", GameID: "match3", LevelID: "first-steps", Score: 100}))

	m := NewScoreboardModel(store, 100, 30)
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "700", m.Rows()[0][1])

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Empty(t, m.Rows(), "endless board")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Len(t, m.Rows(), 2, "recent runs")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
}

func TestAppFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 7}
	var model tea.Model = NewAppModel(nil, cfg, nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, model.(AppModel).screen)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, model.(AppModel).screen)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app := model.(AppModel)
	require.Equal(t, screenGame, app.screen)
	require.NotNil(t, app.game)
	assert.NotNil(t, cmd)

	model, _ = model.Update(TickMsg{})
	assert.Contains(t, model.View(), "Moves:")

	model, _ = model.Update(runes("b"))
	assert.Equal(t, screenMenu, model.(AppModel).screen)

	model, cmd = model.Update(runes("q"))
	assert.True(t, model.(AppModel).quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
