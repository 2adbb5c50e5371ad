// Package engine implements the match-grid rules of the blast puzzle:
// grid state, connected groups, color curation and the cascade that
// resolves a click into a new stable board.
//
// The package is UI-agnostic and deterministic for a given random source.
// Y grows upward: row 0 is the bottom row, rows at or above the grid height
// are the staging area refill cells drop in from.
package engine

import "fmt"

// Pos is a grid coordinate.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Pos offset by (dx, dy).
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Below returns the position one row down.
func (p Pos) Below() Pos {
	return Pos{X: p.X, Y: p.Y - 1}
}

// neighbors4 holds the orthogonal offsets: up, right, down, left.
var neighbors4 = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
