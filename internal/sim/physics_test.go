package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchside/engine/internal/pitch"
)

func TestAxisStep_InsideBounds(t *testing.T) {
	b := pitch.Bounds{Min: 0, Max: 100}

	pos, vel := AxisStep(50, 4, b, 0.98)

	assert.Equal(t, 54.0, pos, "position advances by velocity")
	assert.InDelta(t, 4*0.98, vel, 1e-12, "drag applies after the move")
}

func TestAxisStep_BounceOffMax(t *testing.T) {
	b := pitch.Bounds{Min: 0, Max: 100}

	pos, vel := AxisStep(98, 5, b, 0.98)

	// The crossing step is rejected for position; the bounce registers in
	// the velocity sign.
	assert.Equal(t, 98.0, pos)
	assert.InDelta(t, -5*0.98, vel, 1e-12)
}

func TestAxisStep_BounceOffMin(t *testing.T) {
	b := pitch.Bounds{Min: 0, Max: 100}

	pos, vel := AxisStep(2, -7, b, 0.98)

	assert.Equal(t, 2.0, pos)
	assert.InDelta(t, 7*0.98, vel, 1e-12)
}

func TestAxisStep_LandingExactlyOnBoundIsInside(t *testing.T) {
	b := pitch.Bounds{Min: 0, Max: 100}

	pos, vel := AxisStep(96, 4, b, 0.5)

	assert.Equal(t, 100.0, pos)
	assert.Equal(t, 2.0, vel)
}

func TestStepsToTravel_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0, StepsToTravel(0, 11.5, 0.98))
}

func TestStepsToTravel_Monotonic(t *testing.T) {
	prev := 0
	for d := 10.0; d <= 600; d += 10 {
		got := StepsToTravel(d, 11.5, 0.98)
		assert.GreaterOrEqual(t, got, prev, "steps must not decrease with distance (d=%g)", d)
		prev = got
	}
}

func TestStepsToTravel_TerminatesForUnreachableDistance(t *testing.T) {
	// With drag the ball's total travel is finite; a distance beyond it
	// must still return once velocity decays to rest.
	got := StepsToTravel(1e9, 11.5, 0.98)
	assert.Greater(t, got, 0)
}

func TestAvg(t *testing.T) {
	// Within one unit: snap straight to the target.
	assert.Equal(t, 10.5, avg(10.0, 10.5))
	assert.Equal(t, 9.2, avg(10.0, 9.2))

	// Otherwise: midpoint.
	assert.Equal(t, 15.0, avg(10.0, 20.0))
	assert.Equal(t, 5.0, avg(10.0, 0.0))
}
