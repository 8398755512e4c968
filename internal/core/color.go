package core

// Color represents a foreground color for a screen cell or a board block.
// ColorDefault doubles as "no color" for empty board cells.
type Color uint8

// Block and interface colors. The values map onto ANSI 256-color codes in the
// terminal renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool {
	return c != ColorDefault
}
