package engine

import "testing"

func TestTier(t *testing.T) {
	tests := []struct {
		size     int
		expected int
	}{
		{0, 0}, {1, 0}, {4, 0},
		{5, 1}, {6, 1},
		{7, 2}, {8, 2},
		{9, 3}, {40, 3},
	}
	for _, tc := range tests {
		if got := Tier(tc.size); got != tc.expected {
			t.Errorf("Tier(%d) = %d, expected %d", tc.size, got, tc.expected)
		}
	}
}
