package tui

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Theme maps screen colors to terminal colors.
type Theme struct {
	Name   string
	Colors map[core.Color]lipgloss.Color
}

// DefaultTheme returns the 16-color theme that works on any terminal.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Colors: map[core.Color]lipgloss.Color{
			core.ColorRed:         "1",
			core.ColorGreen:       "2",
			core.ColorYellow:      "3",
			core.ColorBlue:        "4",
			core.ColorMagenta:     "5",
			core.ColorCyan:        "6",
			core.ColorWhite:       "7",
			core.ColorBrightWhite: "15",
			core.ColorOrange:      "208",
			core.ColorGray:        "245",
			core.ColorBlack:       "0",
		},
	}
}

// NeonTheme returns a saturated 256-color theme.
func NeonTheme() Theme {
	t := DefaultTheme()
	t.Name = "neon"
	t.Colors[core.ColorRed] = "197"
	t.Colors[core.ColorGreen] = "118"
	t.Colors[core.ColorYellow] = "227"
	t.Colors[core.ColorBlue] = "45"
	t.Colors[core.ColorMagenta] = "171"
	t.Colors[core.ColorCyan] = "87"
	t.Colors[core.ColorOrange] = "214"
	return t
}

// PastelTheme returns a softer theme.
func PastelTheme() Theme {
	t := DefaultTheme()
	t.Name = "pastel"
	t.Colors[core.ColorRed] = "210"
	t.Colors[core.ColorGreen] = "157"
	t.Colors[core.ColorYellow] = "229"
	t.Colors[core.ColorBlue] = "111"
	t.Colors[core.ColorMagenta] = "183"
	t.Colors[core.ColorCyan] = "123"
	t.Colors[core.ColorOrange] = "216"
	return t
}

// MonochromeTheme returns a grayscale theme. Tiles are told apart by shade
// only, so it suits small palettes.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Name = "mono"
	t.Colors[core.ColorRed] = "255"
	t.Colors[core.ColorGreen] = "250"
	t.Colors[core.ColorYellow] = "246"
	t.Colors[core.ColorBlue] = "242"
	t.Colors[core.ColorMagenta] = "238"
	t.Colors[core.ColorOrange] = "235"
	t.Colors[core.ColorCyan] = "252"
	return t
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"neon":    NeonTheme,
	"pastel":  PastelTheme,
	"mono":    MonochromeTheme,
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	f, ok := themes[name]
	if !ok {
		return Theme{}, false
	}
	return f(), true
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	themeMu     sync.RWMutex
	activeTheme = DefaultTheme()
)

// SetTheme sets the theme used by new painters.
func SetTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	activeTheme = t
}

// CurrentTheme returns the theme used by new painters.
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return activeTheme
}
