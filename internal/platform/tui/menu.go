package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// MenuChoice is the entry picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceCampaign
	ChoiceEndless
	ChoiceLevels
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	choice MenuChoice
	title  string
	gameID string // best score shown next to the entry
}

var menuItems = []menuItem{
	{choice: ChoiceCampaign, title: "Campaign", gameID: match3.ModeCampaign.GameID()},
	{choice: ChoiceEndless, title: "Endless", gameID: match3.ModeEndless.GameID()},
	{choice: ChoiceLevels, title: "Select Level"},
	{choice: ChoiceScores, title: "High Scores"},
	{choice: ChoiceQuit, title: "Quit"},
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model of the main menu.
type MenuModel struct {
	cursor int
	width  int
	height int
	best   map[string]int
	keys   MenuKeyMap
	help   help.Model
	choice MenuChoice
}

// NewMenuModel creates the main menu. Best scores are read from store when
// it is not nil.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	best := make(map[string]int)
	if store != nil {
		for _, it := range menuItems {
			if it.gameID == "" {
				continue
			}
			if high, err := store.HighScore(it.gameID); err == nil {
				best[it.gameID] = high
			}
		}
	}

	return MenuModel{
		width:  width,
		height: height,
		best:   best,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case MenuActionQuit:
			m.choice = ChoiceQuit
		case MenuActionUp:
			m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % len(menuItems)
		case MenuActionSelect:
			m.choice = menuItems[m.cursor].choice
		case MenuActionScores:
			m.choice = ChoiceScores
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M A T C H - 3"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("swap tiles, line up three, break the stones"), m.width))
	b.WriteString("\n\n")

	for i, it := range menuItems {
		line := "  " + it.title
		if i == m.cursor {
			line = cursorStyle.Render("> " + it.title)
		}
		if high := m.best[it.gameID]; high > 0 {
			line += dimStyle.Render(fmt.Sprintf("  (best %d)", high))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the picked entry, ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// centerText centers text within width. Styled text is measured without its
// escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to fit width terminal cells.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, ".")
}
