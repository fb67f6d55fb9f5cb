// internal/engine/scale.go
package engine

import "math"

// Scale is the fixed ascending sequence of allowed scores. An explicit 0
// ("judged irrelevant") is additionally accepted on direct user writes but
// is never produced by snapping.
var Scale = []int{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597}

// Snap maps an arbitrary real number onto the nearest scale member. Values
// at or below zero (and NaN) snap to the lowest member, not to zero. Ties
// resolve to the lower member: ascending iteration with strict less-than
// keeps the first-encountered candidate.
func Snap(n float64) int {
	if math.IsNaN(n) || n <= 0 {
		return Scale[0]
	}

	best := Scale[0]
	bestDist := math.Abs(n - float64(best))
	for _, member := range Scale[1:] {
		dist := math.Abs(n - float64(member))
		if dist < bestDist {
			best = member
			bestDist = dist
		}
	}
	return best
}

// IsValidScore reports whether v is storable as a criterion score: the
// explicit zero or any scale member.
func IsValidScore(v int) bool {
	if v == 0 {
		return true
	}
	for _, member := range Scale {
		if v == member {
			return true
		}
	}
	return false
}
