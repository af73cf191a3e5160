package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("tokyo station to shinjuku station", func(t *testing.T) {
		// Known distance is roughly 6.2 km.
		d := DistanceKm(35.6812, 139.7671, 35.6896, 139.7006)
		assert.InDelta(t, 6.1, d, 0.3)
	})

	t.Run("tokyo to osaka", func(t *testing.T) {
		// Straight-line distance is roughly 400 km.
		d := DistanceKm(35.6812, 139.7671, 34.7025, 135.4959)
		assert.InDelta(t, 400, d, 5)
	})

	t.Run("same point is zero", func(t *testing.T) {
		assert.Zero(t, DistanceKm(35.0, 135.0, 35.0, 135.0))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := DistanceKm(35.6812, 139.7671, 34.7025, 135.4959)
		b := DistanceKm(34.7025, 135.4959, 35.6812, 139.7671)
		assert.InDelta(t, a, b, 1e-9)
	})
}
