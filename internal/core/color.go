package core

// Color is a terminal color for a screen cell.
// The platform maps it to ANSI colors when rendering.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightWhite
	ColorBlack
)

// Style is the look of one screen cell.
type Style struct {
	FG   Color
	BG   Color
	Bold bool
}

// Plain is the default style.
var Plain = Style{}

// Fg returns a style with only a foreground color.
func Fg(c Color) Style {
	return Style{FG: c}
}
