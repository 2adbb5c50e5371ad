package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"center", 20, 15, true},
		{"top-left corner", 10, 10, true},
		{"just inside bottom-right", 29, 19, true},
		{"right edge (exclusive)", 30, 15, false},
		{"bottom edge (exclusive)", 20, 20, false},
		{"left of rect", 9, 15, false},
		{"above rect", 20, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6).Inset(1)
	if r != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}

	tiny := NewRect(0, 0, 1, 1).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset past zero should clamp, got %+v", tiny)
	}
}

func TestRectTile(t *testing.T) {
	board := NewRect(4, 2, 10, 5) // 5 columns of 2 chars, 5 rows

	tests := []struct {
		name     string
		p        Point
		col, row int
		ok       bool
	}{
		{"first tile", Point{4, 2}, 0, 0, true},
		{"second char of first tile", Point{5, 2}, 0, 0, true},
		{"third column", Point{8, 3}, 2, 1, true},
		{"last tile", Point{13, 6}, 4, 4, true},
		{"left of board", Point{3, 2}, 0, 0, false},
		{"below board", Point{4, 7}, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := board.Tile(tc.p, 2, 1)
			if ok != tc.ok || col != tc.col || row != tc.row {
				t.Errorf("Tile(%v) = (%d, %d, %v), expected (%d, %d, %v)",
					tc.p, col, row, ok, tc.col, tc.row, tc.ok)
			}
		})
	}

	if _, _, ok := board.Tile(Point{5, 3}, 0, 1); ok {
		t.Error("zero tile width should never hit")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min failed")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max failed")
	}
}
