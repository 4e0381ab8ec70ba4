package pitch

import (
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() Layout {
	return Layout{
		LevelW:     1000,
		LevelH:     1400,
		HalfPitchW: 442,
		HalfPitchH: 622,
		GoalWidth:  186,
		GoalDepth:  20,
	}
}

func testField(t *testing.T) Field {
	t.Helper()
	f, err := NewField(testLayout())
	require.NoError(t, err)
	return f
}

func TestLayoutValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Layout)
		valid  bool
	}{
		{"defaults", func(l *Layout) {}, true},
		{"zero level width", func(l *Layout) { l.LevelW = 0 }, false},
		{"negative pitch height", func(l *Layout) { l.HalfPitchH = -10 }, false},
		{"pitch wider than level", func(l *Layout) { l.HalfPitchW = 600 }, false},
		{"goal wider than pitch", func(l *Layout) { l.GoalWidth = 900 }, false},
		{"zero goal depth", func(l *Layout) { l.GoalDepth = 0 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := testLayout()
			tc.mutate(&l)
			err := l.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFieldBoundsX(t *testing.T) {
	f := testField(t)

	// At center height the ball can reach the pitch sides.
	assert.Equal(t, f.PitchX, f.BoundsX(f.Center.Y))
	// Just inside the end line still uses pitch bounds.
	assert.Equal(t, f.PitchX, f.BoundsX(f.Center.Y+621))
	// Past the end line the ball is inside a goal mouth.
	assert.Equal(t, f.GoalX, f.BoundsX(f.Center.Y+623))
	assert.Equal(t, f.GoalX, f.BoundsX(f.Center.Y-623))
}

func TestFieldBoundsY(t *testing.T) {
	f := testField(t)

	// Between the posts the ball can run into the net.
	assert.Equal(t, f.GoalY, f.BoundsY(f.Center.X))
	assert.Equal(t, f.GoalY, f.BoundsY(f.Center.X+92))
	// Outside the posts it stops at the end line.
	assert.Equal(t, f.PitchY, f.BoundsY(f.Center.X+94))
	assert.Equal(t, f.PitchY, f.BoundsY(f.PitchX.Min))
}

func TestFieldInPlay(t *testing.T) {
	f := testField(t)

	assert.True(t, f.InPlay(f.Center), "center spot")
	assert.True(t, f.InPlay(geom.XY{X: f.PitchX.Min, Y: f.PitchY.Min}), "corner")
	assert.True(t, f.InPlay(geom.XY{X: f.Center.X, Y: f.GoalY.Min + 5}), "inside low goal")
	assert.True(t, f.InPlay(geom.XY{X: f.Center.X, Y: f.GoalY.Max - 5}), "inside high goal")

	assert.False(t, f.InPlay(geom.XY{X: f.PitchX.Min - 1, Y: f.Center.Y}), "past touchline")
	assert.False(t, f.InPlay(geom.XY{X: f.GoalX.Max + 1, Y: f.GoalY.Min + 5}), "beside the goal")
	assert.False(t, f.InPlay(geom.XY{X: f.Center.X, Y: f.GoalY.Min - 1}), "behind the net")
}

func TestGoalCenter(t *testing.T) {
	f := testField(t)

	low := f.GoalCenter(0)
	assert.Equal(t, f.Center.X, low.X)
	assert.Equal(t, f.PitchY.Min, low.Y)

	high := f.GoalCenter(1)
	assert.Equal(t, f.PitchY.Max, high.Y)
}
