package engine

// Tier buckets a group size for visuals: larger groups get richer glyphs.
//
//	< 5  -> 0
//	5-6  -> 1
//	7-8  -> 2
//	>= 9 -> 3
func Tier(groupSize int) int {
	switch {
	case groupSize >= 9:
		return 3
	case groupSize >= 7:
		return 2
	case groupSize >= 5:
		return 1
	default:
		return 0
	}
}
