package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// LevelMenuModel lists the campaign with per-level statistics.
type LevelMenuModel struct {
	levels []levels.Level
	stats  map[string]storage.LevelStats
	table  table.Model
	keys   MenuKeyMap
	help   help.Model
	width  int
	height int
	chosen int
	back   bool
	quit   bool
}

// NewLevelMenuModel creates the level picker. Statistics come from store
// when it is not nil.
func NewLevelMenuModel(lvls []levels.Level, store *storage.Store, width, height int) LevelMenuModel {
	stats := map[string]storage.LevelStats{}
	if store != nil {
		if all, err := store.AllLevelStats(); err == nil {
			stats = all
		}
	}

	m := LevelMenuModel{
		levels: lvls,
		stats:  stats,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		chosen: -1,
	}
	m.table = m.createTable()
	return m
}

func (m *LevelMenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 22},
		{Title: "Size", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Plays", Width: 6},
		{Title: "Won", Width: 5},
		{Title: "Best", Width: 7},
	}

	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		st := m.stats[l.ID]
		best := "-"
		if st.Plays > 0 {
			best = strconv.Itoa(st.BestScore)
		}
		rows[i] = table.Row{
			truncate(l.Title(), columns[0].Width),
			fmt.Sprintf("%dx%d", l.Width, l.Height),
			strconv.Itoa(l.Moves),
			strconv.Itoa(st.Plays),
			strconv.Itoa(st.Wins),
			best,
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level picker.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case MenuActionQuit:
			m.quit = true
			return m, nil
		case MenuActionBack:
			m.back = true
			return m, nil
		case MenuActionSelect:
			if len(m.levels) > 0 {
				m.chosen = m.table.Cursor()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the level picker.
func (m LevelMenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(dimStyle.Render("No levels found."), m.width))
	} else {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(m.table.View())))
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// Chosen returns the picked campaign index.
func (m LevelMenuModel) Chosen() (int, bool) {
	return m.chosen, m.chosen >= 0
}

// GoingBack reports whether the user left the picker.
func (m LevelMenuModel) GoingBack() bool {
	return m.back
}

// Quitting reports whether the user asked to quit.
func (m LevelMenuModel) Quitting() bool {
	return m.quit
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
