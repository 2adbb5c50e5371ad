package engine

import "fmt"

// Handle is an opaque reference to a cell's visual representation.
// Handles are owned by the CellPool; the grid only carries them.
type Handle uint32

// Cell is a single block on the board.
type Cell struct {
	Color     Color  // Palette color
	GroupSize int    // Size of the connected group at the last rescan
	Handle    Handle // Visual handle borrowed from the pool
	Pos       Pos    // Current grid position, maintained by Grid
}

// Grid is the authoritative board: a width x height slot mapping plus a
// staging area of the same height directly above it.
// Slots are stored row-major from the bottom row: index = y*width + x.
type Grid struct {
	width  int
	height int
	slots  []*Cell // In-grid slots
	staged []*Cell // Staging slots, rows height..2*height-1
}

// NewGrid creates an empty grid. Dimensions are fixed for its lifetime.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		slots:  make([]*Cell, width*height),
		staged: make([]*Cell, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of in-grid rows.
func (g *Grid) Height() int {
	return g.height
}

// IsValid reports whether p lies inside the grid proper.
func (g *Grid) IsValid(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// InStaging reports whether p lies in the staging rows above the grid.
func (g *Grid) InStaging(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= g.height && p.Y < 2*g.height
}

// slot returns the storage slot for p, or nil when p has none.
func (g *Grid) slot(p Pos) **Cell {
	switch {
	case g.IsValid(p):
		return &g.slots[p.Y*g.width+p.X]
	case g.InStaging(p):
		return &g.staged[(p.Y-g.height)*g.width+p.X]
	default:
		return nil
	}
}

// Get returns the cell at p. The bool is false when the slot is empty or p
// is outside both the grid and the staging rows.
func (g *Grid) Get(p Pos) (*Cell, bool) {
	s := g.slot(p)
	if s == nil || *s == nil {
		return nil, false
	}
	return *s, true
}

// Set places cell at p, or clears the slot when cell is nil.
// The cell's Pos is updated to p.
func (g *Grid) Set(p Pos, cell *Cell) error {
	s := g.slot(p)
	if s == nil {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	if cell != nil {
		cell.Pos = p
	}
	*s = cell
	return nil
}

// Move relocates the cell at from to the empty slot at to.
func (g *Grid) Move(from, to Pos) error {
	src := g.slot(from)
	if src == nil || *src == nil {
		return fmt.Errorf("%w: no cell at %v", ErrInvalidMove, from)
	}
	dst := g.slot(to)
	if dst == nil {
		return fmt.Errorf("%w: target %v out of bounds", ErrInvalidMove, to)
	}
	if *dst != nil {
		return fmt.Errorf("%w: target %v occupied", ErrInvalidMove, to)
	}

	cell := *src
	*src = nil
	cell.Pos = to
	*dst = cell
	return nil
}

// Cells returns the resident in-grid cells, bottom row first.
func (g *Grid) Cells() []*Cell {
	cells := make([]*Cell, 0, len(g.slots))
	for _, c := range g.slots {
		if c != nil {
			cells = append(cells, c)
		}
	}
	return cells
}

// Count returns the number of in-grid cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.slots {
		if c != nil {
			n++
		}
	}
	return n
}

// Vacancies returns the number of empty in-grid slots.
func (g *Grid) Vacancies() int {
	return len(g.slots) - g.Count()
}

// ColumnVacancies returns the number of empty in-grid slots in column x.
func (g *Grid) ColumnVacancies(x int) int {
	if x < 0 || x >= g.width {
		return 0
	}
	n := 0
	for y := 0; y < g.height; y++ {
		if g.slots[y*g.width+x] == nil {
			n++
		}
	}
	return n
}

// StagedCount returns the number of cells waiting in the staging rows.
func (g *Grid) StagedCount() int {
	n := 0
	for _, c := range g.staged {
		if c != nil {
			n++
		}
	}
	return n
}

// Colors returns the color of every in-grid cell keyed by position.
func (g *Grid) Colors() map[Pos]Color {
	colors := make(map[Pos]Color, len(g.slots))
	for _, c := range g.slots {
		if c != nil {
			colors[c.Pos] = c.Color
		}
	}
	return colors
}

// Clone returns a deep copy of the grid. Handles are copied, not reacquired.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		width:  g.width,
		height: g.height,
		slots:  make([]*Cell, len(g.slots)),
		staged: make([]*Cell, len(g.staged)),
	}
	for i, c := range g.slots {
		if c != nil {
			cp := *c
			clone.slots[i] = &cp
		}
	}
	for i, c := range g.staged {
		if c != nil {
			cp := *c
			clone.staged[i] = &cp
		}
	}
	return clone
}

// String renders the grid top row first, one letter per cell, '.' for empty.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.width+1)*g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			if c := g.slots[y*g.width+x]; c != nil {
				buf = append(buf, byte(c.Color.Char()))
			} else {
				buf = append(buf, '.')
			}
		}
		if y > 0 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
