package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Painter turns screen styles into lipgloss styles for one renderer.
// SSH sessions each get their own renderer so color detection follows the
// client terminal.
type Painter struct {
	renderer *lipgloss.Renderer
	theme    Theme
	cache    map[core.Style]lipgloss.Style
}

// NewPainter creates a painter with the current theme. nil uses the default
// renderer.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r, theme: CurrentTheme(), cache: make(map[core.Style]lipgloss.Style)}
}

func (p *Painter) style(st core.Style) lipgloss.Style {
	if s, ok := p.cache[st]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if c, ok := p.theme.Colors[st.FG]; ok {
		s = s.Foreground(c)
	}
	if c, ok := p.theme.Colors[st.BG]; ok {
		s = s.Background(c)
	}
	if st.Bold {
		s = s.Bold(true)
	}
	p.cache[st] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style are rendered together to keep the
// number of escape sequences down.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == core.Plain {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with the default renderer.
func RenderScreen(s *core.Screen) string {
	return NewPainter(nil).Render(s)
}
