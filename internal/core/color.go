package core

// Color represents a foreground color for a screen cell.
// Mapped to ANSI 256-color codes by the presentation layer.
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
	ColorBrightRed
	ColorBrightGreen
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
