package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsBadDimensions(t *testing.T) {
	_, err := NewGrid(0, 5)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewGrid(5, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestGridIsValid(t *testing.T) {
	g, err := NewGrid(4, 3)
	require.NoError(t, err)

	tests := []struct {
		pos      Pos
		expected bool
	}{
		{P(0, 0), true},
		{P(3, 2), true},
		{P(-1, 0), false},
		{P(0, -1), false},
		{P(4, 0), false},
		{P(0, 3), false}, // staging row is not valid
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, g.IsValid(tc.pos), "IsValid(%v)", tc.pos)
	}

	assert.True(t, g.InStaging(P(0, 3)))
	assert.True(t, g.InStaging(P(3, 5)))
	assert.False(t, g.InStaging(P(0, 6)))
	assert.False(t, g.InStaging(P(0, 2)))
}

func TestGridSetGet(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	cell := &Cell{Color: Green, Handle: 7}
	require.NoError(t, g.Set(P(1, 2), cell))

	got, ok := g.Get(P(1, 2))
	require.True(t, ok)
	assert.Same(t, cell, got)
	assert.Equal(t, P(1, 2), got.Pos)

	require.NoError(t, g.Set(P(1, 2), nil))
	_, ok = g.Get(P(1, 2))
	assert.False(t, ok)

	_, ok = g.Get(P(9, 9))
	assert.False(t, ok)

	require.ErrorIs(t, g.Set(P(-1, 0), cell), ErrInvalidPosition)
	require.ErrorIs(t, g.Set(P(0, 6), cell), ErrInvalidPosition)

	// Staging slots accept cells.
	require.NoError(t, g.Set(P(0, 3), &Cell{Color: Red}))
	assert.Equal(t, 1, g.StagedCount())
	assert.Equal(t, 0, g.Count())
}

func TestGridMove(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(P(0, 1), &Cell{Color: Red}))
	require.NoError(t, g.Set(P(1, 1), &Cell{Color: Blue}))

	require.NoError(t, g.Move(P(0, 1), P(0, 0)))
	moved, ok := g.Get(P(0, 0))
	require.True(t, ok)
	assert.Equal(t, P(0, 0), moved.Pos)
	_, ok = g.Get(P(0, 1))
	assert.False(t, ok, "source should be cleared")

	tests := []struct {
		name     string
		from, to Pos
	}{
		{"empty source", P(2, 2), P(2, 1)},
		{"occupied target", P(0, 0), P(1, 1)},
		{"target out of bounds", P(0, 0), P(-1, 0)},
		{"source out of bounds", P(5, 5), P(0, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, g.Move(tc.from, tc.to), ErrInvalidMove)
		})
	}
}

func TestGridMoveFromStaging(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(P(1, 2), &Cell{Color: Yellow}))

	require.NoError(t, g.Move(P(1, 2), P(1, 1)))
	assert.Equal(t, 0, g.StagedCount())
	assert.Equal(t, 1, g.Count())
}

func TestGridCountsAndColors(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(P(0, 0), &Cell{Color: Red}))
	require.NoError(t, g.Set(P(0, 1), &Cell{Color: Blue}))
	require.NoError(t, g.Set(P(2, 0), &Cell{Color: Red}))

	assert.Equal(t, 3, g.Count())
	assert.Equal(t, 3, g.Vacancies())
	assert.Equal(t, 0, g.ColumnVacancies(0))
	assert.Equal(t, 2, g.ColumnVacancies(1))
	assert.Equal(t, 1, g.ColumnVacancies(2))
	assert.Equal(t, 0, g.ColumnVacancies(7))
	assert.Len(t, g.Cells(), 3)

	assert.Equal(t, map[Pos]Color{
		P(0, 0): Red,
		P(0, 1): Blue,
		P(2, 0): Red,
	}, g.Colors())

	assert.Equal(t, "B..\nR.R", g.String())
}

func TestGridClone(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(P(0, 0), &Cell{Color: Red, Handle: 1}))

	clone := g.Clone()
	require.NoError(t, g.Set(P(0, 0), nil))

	c, ok := clone.Get(P(0, 0))
	require.True(t, ok, "clone should not be affected by original modification")
	assert.Equal(t, Handle(1), c.Handle)
}
