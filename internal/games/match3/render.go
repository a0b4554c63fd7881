package match3

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellW        = 3 // "[●]" with the cursor brackets
	hudHeight    = 4
	footerHeight = 3
)

var tileColors = map[core.Tile]platformcore.Color{
	core.Red:    platformcore.ColorRed,
	core.Blue:   platformcore.ColorBlue,
	core.Green:  platformcore.ColorGreen,
	core.Yellow: platformcore.ColorYellow,
	core.Purple: platformcore.ColorMagenta,
	core.Orange: platformcore.ColorOrange,
}

var (
	hudStyle    = platformcore.Style{FG: platformcore.ColorBrightWhite, Bold: true}
	dimStyle    = platformcore.Fg(platformcore.ColorGray)
	borderStyle = platformcore.Fg(platformcore.ColorCyan)
	cursorStyle = platformcore.Style{FG: platformcore.ColorBrightWhite, Bold: true}
	stoneStyle  = platformcore.Style{FG: platformcore.ColorBlack, BG: platformcore.ColorGray, Bold: true}
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "No level loaded"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, hudStyle)
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", hudStyle)
		dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal", dimStyle)
		return
	}

	grid := g.session.Board().Grid()
	var marks map[core.Coord]bool
	label := ""
	if f, ok := g.anim.current(); ok {
		grid, marks, label = f.grid, f.marks, f.label
	}

	boardW := grid.W*cellW + 2
	boardH := grid.H + 2
	area := platformcore.Centered(boardW, boardH, g.screenW, g.screenH-hudHeight-footerHeight)
	area.Y += hudHeight

	g.renderHUD(dst, area)
	dst.DrawBox(area, borderStyle)
	g.renderBoard(dst, grid, area, marks)
	g.renderFooter(dst, area, label)

	if st := g.State(); st.GameOver {
		g.renderOverlay(dst, area)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen, area platformcore.Rect) {
	l := g.session.Level()
	tr := g.session.Tracker()

	title := g.Title()
	if g.mode == ModeCampaign {
		title = fmt.Sprintf("%s  %s", g.Title(), l.Title())
	}
	dst.DrawTextCentered(area.Y-hudHeight, title, hudStyle)

	stats := fmt.Sprintf("Moves: %d   Score: %d", tr.MovesLeft(), g.session.Score())
	dst.DrawTextCentered(area.Y-hudHeight+1, stats, platformcore.Plain)

	y := area.Y - hudHeight + 2
	goals := tr.Goals()
	stonesDone, stoneTarget := tr.Stones()
	if len(goals) == 0 && stoneTarget == 0 {
		dst.DrawTextCentered(y, "Score as much as you can", dimStyle)
		return
	}

	// colored goals laid out like Tracker.Summary
	x := platformcore.Max(0, (g.screenW-len(tr.Summary()))/2)
	for _, goal := range goals {
		text := goal.String()
		st := platformcore.Fg(tileColors[goal.Tile])
		if goal.Done() {
			st.Bold = true
		}
		dst.DrawTextStyled(x, y, text, st)
		x += len(text) + 2
	}
	if stoneTarget > 0 {
		dst.DrawTextStyled(x, y, fmt.Sprintf("stones %d/%d", stonesDone, stoneTarget), dimStyle)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, grid *core.Grid, area platformcore.Rect, marks map[core.Coord]bool) {
	busy := g.anim.playing()
	for y := 0; y < grid.H; y++ {
		// row 0 is the bottom of the board
		py := area.Y + 1 + (grid.H - 1 - y)
		for x := 0; x < grid.W; x++ {
			c := core.C(x, y)
			px := area.X + 1 + x*cellW

			glyph, st := cellGlyph(grid.Get(c))
			switch {
			case marks[c]:
				glyph, st.Bold = '*', true
			case !busy && g.showHint && (c == g.hint.A || c == g.hint.B):
				st.BG = platformcore.ColorGray
			case !busy && g.selected && c == g.selection:
				st.BG = platformcore.ColorWhite
				st.Bold = true
			}
			dst.SetStyled(px+1, py, glyph, st)

			if !busy && c == g.cursor {
				dst.SetStyled(px, py, '[', cursorStyle)
				dst.SetStyled(px+2, py, ']', cursorStyle)
			}
		}
	}
}

func cellGlyph(c core.Cell) (rune, platformcore.Style) {
	switch {
	case c.Stone:
		return rune('0' + platformcore.Clamp(c.StoneHP, 0, 9)), stoneStyle
	case c.Tile == core.Empty:
		return '·', dimStyle
	default:
		return '●', platformcore.Fg(tileColors[c.Tile])
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, area platformcore.Rect, label string) {
	y := area.Bottom() + 1
	status := g.message
	if label != "" {
		status = label
	}
	if status != "" {
		dst.DrawTextCentered(y, status, hudStyle)
	}
	dst.DrawTextCentered(y+1, g.Controls(), dimStyle)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, area platformcore.Rect) {
	score := fmt.Sprintf("Score: %d", g.session.Score())
	switch {
	case g.session.Won() && g.mode == ModeCampaign:
		next := "N: next level  R: replay"
		if g.manager != nil && g.manager.IsFinal() {
			next = "Campaign complete!  N: start over"
		}
		g.drawOverlay(dst, area, "LEVEL COMPLETE!", score, next)
	case g.mode == ModeEndless:
		g.drawOverlay(dst, area, "GAME OVER", score, "Press R to restart")
	case g.session.Tracker().MovesLeft() > 0:
		g.drawOverlay(dst, area, "NO MOVES LEFT", score, "Press R to restart")
	default:
		g.drawOverlay(dst, area, "OUT OF MOVES", score, "Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, area platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(
		area.X+(area.W-boxW)/2,
		area.Y+(area.H-boxH)/2,
		boxW, boxH,
	)
	dst.FillRect(box, ' ', platformcore.Plain)
	dst.DrawBox(box, hudStyle)
	for i, line := range lines {
		dst.DrawTextStyled(box.X+(boxW-len(line))/2, box.Y+1+i, line, hudStyle)
	}
}
