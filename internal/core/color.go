package core

// Color is the foreground color of a screen cell.
// The platform maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorOrange
	ColorGray
	ColorWhite
	ColorCyan
)

// Attr is a set of text attributes for a screen cell.
type Attr uint8

const (
	AttrBold    Attr = 1 << iota // Emphasized glyph
	AttrReverse                  // Swap foreground and background
	AttrFaint                    // Dimmed glyph

	AttrNone Attr = 0
)

// Has reports whether all bits of other are set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}
