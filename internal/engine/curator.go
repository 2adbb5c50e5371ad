package engine

// Rand is the random source the curator draws from.
// *math/rand.Rand satisfies it; tests inject a seeded one.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Curator picks colors for new cells so boards start and stay playable:
// a few deliberately matchable seed groups at population time, and a biased
// chance of extending a group on refill. Everything else is uniform random.
type Curator struct {
	width  int
	height int
	cfg    Settings
	rng    Rand
	seeds  int // Seed groups placed since the last ResetSeeds
}

// NewCurator creates a curator for a width x height board.
func NewCurator(width, height int, cfg Settings, rng Rand) *Curator {
	return &Curator{
		width:  width,
		height: height,
		cfg:    cfg,
		rng:    rng,
	}
}

// ResetSeeds clears the seed counter. Called once per board population.
func (c *Curator) ResetSeeds() {
	c.seeds = 0
}

// Seeds returns the number of seed groups placed since the last reset.
func (c *Curator) Seeds() int {
	return c.seeds
}

// ColorForInitialPlacement returns the color for a cell being placed at pos
// during population. placedSoFar holds the colors already placed; positions
// missing from it count as wildcards.
func (c *Curator) ColorForInitialPlacement(pos Pos, placedSoFar map[Pos]Color) Color {
	if c.seeds < c.cfg.MinSeedGroupCount {
		if color, ok := c.groupColor(pos, placedSoFar, true); ok {
			c.seeds++
			return color
		}
	}
	return c.randomColor()
}

// ColorForRefill returns the color for a refill cell landing at pos.
// existing holds the current board; empty positions do not count.
func (c *Curator) ColorForRefill(pos Pos, existing map[Pos]Color) Color {
	if c.rng.Float64() < c.cfg.SpawnGroupProbability {
		if color, ok := c.groupColor(pos, existing, false); ok {
			return color
		}
	}
	return c.randomColor()
}

// randomColor returns a uniformly random color from the configured palette.
func (c *Curator) randomColor() Color {
	return Color(c.rng.Intn(c.cfg.ColorCount))
}

// groupColor tries each palette color in order and returns the first one
// for which placing it at pos reaches MinSeedGroupSize.
func (c *Curator) groupColor(pos Pos, colors map[Pos]Color, optimistic bool) (Color, bool) {
	for i := 0; i < c.cfg.ColorCount; i++ {
		color := Color(i)
		if c.reach(pos, color, colors, optimistic) >= c.cfg.MinSeedGroupSize {
			return color, true
		}
	}
	return 0, false
}

// reach counts cells reachable from pos through slots that would join a
// group of the given color. With optimistic set, unplaced slots qualify too.
// Counting stops once the minimum is reached.
func (c *Curator) reach(pos Pos, color Color, colors map[Pos]Color, optimistic bool) int {
	target := c.cfg.MinSeedGroupSize
	seen := map[Pos]bool{pos: true}
	queue := []Pos{pos}

	for qi := 0; qi < len(queue) && len(queue) < target; qi++ {
		cur := queue[qi]
		for _, d := range neighbors4 {
			next := cur.Add(d[0], d[1])
			if !c.inBounds(next) || seen[next] {
				continue
			}
			seen[next] = true

			existing, placed := colors[next]
			if (placed && existing == color) || (!placed && optimistic) {
				queue = append(queue, next)
				if len(queue) >= target {
					break
				}
			}
		}
	}
	return len(queue)
}

// inBounds reports whether p lies inside the board.
func (c *Curator) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}
