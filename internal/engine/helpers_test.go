package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from letter rows, top row first; '.' is empty.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	height := len(rows)
	require.NotZero(t, height)
	width := len(rows[0])

	g, err := NewGrid(width, height)
	require.NoError(t, err)

	var next Handle
	for i, row := range rows {
		require.Len(t, row, width, "row %d", i)
		y := height - 1 - i
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			color, ok := ParseColor(string(ch))
			require.True(t, ok, "bad color %q", ch)
			next++
			require.NoError(t, g.Set(P(x, y), &Cell{Color: color, Handle: next}))
		}
	}
	return g
}

// randomGrid fills a grid with uniformly random colors.
func randomGrid(t *testing.T, rng *rand.Rand, width, height, colors int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			require.NoError(t, g.Set(P(x, y), &Cell{Color: Color(rng.Intn(colors))}))
		}
	}
	return g
}

// assertSettled checks that every column is packed from row 0 upward.
func assertSettled(t *testing.T, g *Grid) {
	t.Helper()
	for x := 0; x < g.Width(); x++ {
		gap := false
		for y := 0; y < g.Height(); y++ {
			_, ok := g.Get(P(x, y))
			if !ok {
				gap = true
				continue
			}
			require.False(t, gap, "column %d has a gap below row %d:\n%s", x, y, g)
		}
	}
}

// fixedRand is a Rand whose Float64 is constant and whose Intn cycles.
type fixedRand struct {
	float float64
	n     int
}

func (r *fixedRand) Intn(n int) int {
	v := r.n % n
	r.n++
	return v
}

func (r *fixedRand) Float64() float64 {
	return r.float
}
