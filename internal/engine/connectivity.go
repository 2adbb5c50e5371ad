package engine

import "sort"

// Group is a maximal set of 4-connected in-grid cells sharing one color.
type Group struct {
	Color   Color
	Members []Pos // BFS order, starting cell first
}

// Size returns the number of cells in the group.
func (gr Group) Size() int {
	return len(gr.Members)
}

// Contains reports whether p belongs to the group.
func (gr Group) Contains(p Pos) bool {
	for _, m := range gr.Members {
		if m == p {
			return true
		}
	}
	return false
}

// Analyzer computes connected same-color groups over a Grid.
// Only in-grid cells participate; staged cells are never part of a group.
type Analyzer struct {
	grid *Grid
}

// NewAnalyzer creates an analyzer bound to g.
func NewAnalyzer(g *Grid) *Analyzer {
	return &Analyzer{grid: g}
}

// GroupSize returns the size of the group containing p,
// or 0 when p is empty or outside the grid.
func (a *Analyzer) GroupSize(p Pos) int {
	return len(a.flood(p, nil))
}

// ConnectedGroup returns the group containing p.
// The group is empty when p is empty or outside the grid.
func (a *Analyzer) ConnectedGroup(p Pos) Group {
	members := a.flood(p, nil)
	if len(members) == 0 {
		return Group{}
	}
	start, _ := a.grid.Get(p)
	return Group{Color: start.Color, Members: members}
}

// flood runs a breadth-first traversal from p over same-color neighbors.
// seen, when non-nil, is shared across calls so a sweep visits each cell once.
//
// Time:   O(W·H).
// Memory: O(W·H) for the visited bitmap and queue.
func (a *Analyzer) flood(p Pos, seen []bool) []Pos {
	g := a.grid
	if !g.IsValid(p) {
		return nil
	}
	start, ok := g.Get(p)
	if !ok {
		return nil
	}
	if seen == nil {
		seen = make([]bool, g.width*g.height)
	}

	queue := []Pos{p}
	seen[p.Y*g.width+p.X] = true

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for _, d := range neighbors4 {
			next := cur.Add(d[0], d[1])
			if !g.IsValid(next) {
				continue
			}
			idx := next.Y*g.width + next.X
			if seen[idx] {
				continue
			}
			nc := g.slots[idx]
			if nc == nil || nc.Color != start.Color {
				continue
			}
			seen[idx] = true
			queue = append(queue, next)
		}
	}
	return queue
}

// components sweeps the grid bottom row first and returns every group.
func (a *Analyzer) components() []Group {
	g := a.grid
	seen := make([]bool, g.width*g.height)
	var groups []Group

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := y*g.width + x
			c := g.slots[idx]
			if c == nil || seen[idx] {
				continue
			}
			groups = append(groups, Group{
				Color:   c.Color,
				Members: a.flood(P(x, y), seen),
			})
		}
	}
	return groups
}

// RescanAll recomputes and stores GroupSize on every in-grid cell.
// It never removes anything; the result equals GroupSize(c.Pos) per cell.
func (a *Analyzer) RescanAll() {
	for _, gr := range a.components() {
		size := gr.Size()
		for _, p := range gr.Members {
			c, _ := a.grid.Get(p)
			c.GroupSize = size
		}
	}
}

// Groups returns all groups of at least minSize cells, largest first.
// Groups of equal size keep sweep order.
func (a *Analyzer) Groups(minSize int) []Group {
	var result []Group
	for _, gr := range a.components() {
		if gr.Size() >= minSize {
			result = append(result, gr)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Size() > result[j].Size()
	})
	return result
}

// HasMove reports whether any group of at least minSize cells exists.
func (a *Analyzer) HasMove(minSize int) bool {
	for _, gr := range a.components() {
		if gr.Size() >= minSize {
			return true
		}
	}
	return false
}
