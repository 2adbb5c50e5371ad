package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populateColors(c *Curator, width, height int) map[Pos]Color {
	placed := make(map[Pos]Color, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			p := P(x, y)
			placed[p] = c.ColorForInitialPlacement(p, placed)
		}
	}
	return placed
}

func TestInitialPlacementSeedsGroups(t *testing.T) {
	cfg := DefaultSettings()
	c := NewCurator(cfg.Width, cfg.Height, cfg, rand.New(rand.NewSource(42)))

	placed := populateColors(c, cfg.Width, cfg.Height)
	require.Len(t, placed, cfg.Width*cfg.Height)
	assert.Equal(t, cfg.MinSeedGroupCount, c.Seeds())

	// An empty neighborhood satisfies the optimistic search with the first
	// palette color, so the opening cells form the seed group.
	for y := 0; y < cfg.MinSeedGroupSize; y++ {
		assert.Equal(t, Color(0), placed[P(0, y)], "seed cell at row %d", y)
	}

	for p, color := range placed {
		assert.Less(t, int(color), cfg.ColorCount, "color at %v outside palette", p)
	}
}

func TestInitialPlacementResetSeeds(t *testing.T) {
	cfg := DefaultSettings()
	cfg.MinSeedGroupCount = 2
	c := NewCurator(4, 4, cfg, rand.New(rand.NewSource(1)))

	populateColors(c, 4, 4)
	assert.Equal(t, 2, c.Seeds())

	c.ResetSeeds()
	assert.Zero(t, c.Seeds())
	populateColors(c, 4, 4)
	assert.Equal(t, 2, c.Seeds())
}

func TestInitialPlacementWithoutSeeds(t *testing.T) {
	cfg := DefaultSettings()
	cfg.ColorCount = 3
	cfg.MinSeedGroupCount = 0
	rng := &fixedRand{}
	c := NewCurator(3, 3, cfg, rng)

	placed := populateColors(c, 3, 3)
	assert.Zero(t, c.Seeds())
	// Pure random fallback cycles through the palette.
	assert.Equal(t, Color(0), placed[P(0, 0)])
	assert.Equal(t, Color(1), placed[P(0, 1)])
	assert.Equal(t, Color(2), placed[P(0, 2)])
	assert.Equal(t, Color(0), placed[P(1, 0)])
}

func TestInitialPlacementSeedTooLargeFallsBack(t *testing.T) {
	cfg := DefaultSettings()
	cfg.ColorCount = 2
	cfg.MinSeedGroupSize = 10 // Larger than the 3x3 board
	c := NewCurator(3, 3, cfg, &fixedRand{n: 1})

	color := c.ColorForInitialPlacement(P(0, 0), map[Pos]Color{})
	assert.Equal(t, Color(1), color)
	assert.Zero(t, c.Seeds())
}

func TestRefillExtendsExistingGroup(t *testing.T) {
	cfg := DefaultSettings()
	cfg.SpawnGroupProbability = 1
	c := NewCurator(3, 3, cfg, &fixedRand{float: 0.99})

	existing := map[Pos]Color{
		P(0, 0): Blue,
		P(1, 0): Blue,
		P(0, 1): Green,
	}
	assert.Equal(t, Blue, c.ColorForRefill(P(2, 0), existing))
}

func TestRefillIsNotOptimistic(t *testing.T) {
	cfg := DefaultSettings()
	cfg.ColorCount = 4
	cfg.SpawnGroupProbability = 1
	rng := &fixedRand{n: 3}
	c := NewCurator(3, 3, cfg, rng)

	// Nothing nearby can reach three cells, so the color is random.
	existing := map[Pos]Color{P(0, 0): Red}
	assert.Equal(t, Color(3), c.ColorForRefill(P(2, 2), existing))
}

func TestRefillProbabilityZeroIsRandom(t *testing.T) {
	cfg := DefaultSettings()
	cfg.SpawnGroupProbability = 0
	c := NewCurator(3, 3, cfg, &fixedRand{n: 2})

	existing := map[Pos]Color{
		P(0, 0): Blue,
		P(1, 0): Blue,
	}
	assert.Equal(t, Color(2), c.ColorForRefill(P(2, 0), existing))
}

func TestRefillColorsStayInPalette(t *testing.T) {
	cfg := DefaultSettings()
	cfg.ColorCount = 3
	rng := rand.New(rand.NewSource(5))
	c := NewCurator(6, 6, cfg, rng)

	existing := make(map[Pos]Color)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			p := P(x, y)
			color := c.ColorForRefill(p, existing)
			require.Less(t, int(color), cfg.ColorCount)
			existing[p] = color
		}
	}
}
