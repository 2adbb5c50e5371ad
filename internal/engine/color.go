package engine

import "strings"

// Color is a cell color from the fixed palette.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Orange
	MaxColors = 6 // Palette size; a board uses the first N colors
)

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single letter for ASCII dumps of the board.
func (c Color) Char() rune {
	switch c {
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Green:
		return 'G'
	case Yellow:
		return 'Y'
	case Purple:
		return 'P'
	case Orange:
		return 'O'
	default:
		return '?'
	}
}

// ParseColor converts a name or letter to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "green", "g":
		return Green, true
	case "yellow", "y":
		return Yellow, true
	case "purple", "p":
		return Purple, true
	case "orange", "o":
		return Orange, true
	default:
		return Red, false
	}
}

// Palette returns the first n colors of the palette, clamped to [1, MaxColors].
func Palette(n int) []Color {
	if n < 1 {
		n = 1
	}
	if n > MaxColors {
		n = MaxColors
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color(i)
	}
	return colors
}
