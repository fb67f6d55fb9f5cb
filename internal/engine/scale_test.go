// internal/engine/scale_test.go
package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap_NonPositiveValues(t *testing.T) {
	tests := []struct {
		name  string
		input float64
	}{
		{"zero", 0},
		{"negative", -5},
		{"large negative", -1e9},
		{"negative fraction", -0.0001},
		{"NaN", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, Snap(tt.input), "values at or below zero snap to the lowest member, never to 0")
		})
	}
}

func TestSnap_ExactMembers(t *testing.T) {
	for _, member := range Scale {
		assert.Equal(t, member, Snap(float64(member)))
	}
}

func TestSnap_MidpointsFavorLowerMember(t *testing.T) {
	for i := 0; i < len(Scale)-1; i++ {
		a, b := Scale[i], Scale[i+1]
		mid := (float64(a) + float64(b)) / 2
		assert.Equal(t, a, Snap(mid), "midpoint between %d and %d must favor %d", a, b, a)
	}
}

func TestSnap_NearestMember(t *testing.T) {
	tests := []struct {
		input    float64
		expected int
	}{
		{0.4, 1},
		{1.4, 1},
		{1.6, 2},
		{4.1, 5},
		{6.4, 5},
		{6.6, 8},
		{10, 8},
		{11, 13},
		{100, 89},
		{120, 144},
		{1300, 1597},
		{99999, 1597},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Snap(tt.input), "snap(%v)", tt.input)
	}
}

func TestIsValidScore(t *testing.T) {
	assert.True(t, IsValidScore(0), "explicit zero is storable")
	for _, member := range Scale {
		assert.True(t, IsValidScore(member))
	}
	for _, v := range []int{-1, 4, 6, 7, 100, 1598} {
		assert.False(t, IsValidScore(v), "%d is not on the scale", v)
	}
}
