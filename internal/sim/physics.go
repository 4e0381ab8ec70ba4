package sim

import (
	"github.com/pitchside/engine/internal/pitch"
)

// restThreshold is the speed below which a kicked ball is considered
// stopped by the pass-step estimator.
const restThreshold = 0.25

// AxisStep advances one axis of free-ball motion by a single tick. The
// position moves by the velocity; a move that would cross either bound is
// rejected (position reverts) while the bounce is kept in the velocity
// sign, so the ball stops at the wall instead of penetrating it. Drag is
// applied last in all cases.
func AxisStep(pos, vel float64, b pitch.Bounds, drag float64) (float64, float64) {
	pos += vel

	if !b.Contains(pos) {
		pos -= vel
		vel = -vel
	}

	return pos, vel * drag
}

// StepsToTravel estimates how many ticks a ball kicked at kickStrength
// needs to cover distance, given per-tick drag. Used by pass planning to
// time runs onto the ball; the physics step itself never calls it.
func StepsToTravel(distance, kickStrength, drag float64) int {
	steps := 0
	vel := kickStrength

	for distance > 0 && vel > restThreshold {
		distance -= vel
		steps++
		vel *= drag
	}

	return steps
}

// avg blends a toward b: snaps straight to b once within one world unit,
// otherwise returns the midpoint. The snap avoids the asymptotic jitter a
// plain average would produce when carrying the ball.
func avg(a, b float64) float64 {
	d := b - a
	if d < 1 && d > -1 {
		return b
	}
	return (a + b) / 2
}
