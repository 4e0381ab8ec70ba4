package sim

import (
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/engine/internal/pitch"
)

func computerMatch(t *testing.T, difficulty Difficulty, spawns []PlayerSpawn) *Match {
	t.Helper()

	field, err := pitch.NewField(pitch.Layout{
		LevelW:     1000,
		LevelH:     1400,
		HalfPitchW: 442,
		HalfPitchH: 622,
		GoalWidth:  186,
		GoalDepth:  20,
	})
	require.NoError(t, err)

	m, err := NewMatch("cpu", field, DefaultTuning(), difficulty,
		[2]TeamSetup{
			{Human: false, AttacksEnd: 0},
			{Human: false, AttacksEnd: 1},
		},
		spawns,
	)
	require.NoError(t, err)
	return m
}

func TestControl_OffBallPlayerChasesBall(t *testing.T) {
	m := computerMatch(t, Medium, []PlayerSpawn{
		{Team: 0, Pos: geom.XY{X: 300, Y: 700}},
	})

	before := m.Players[0].Pos
	m.Step()

	after := m.Players[0].Pos
	assert.Greater(t, after.X, before.X, "player closes on the ball at the center spot")
	assert.InDelta(t, m.Tuning().PlayerSpeed, after.Sub(before).Length(), 1e-9)
}

func TestControl_CarrierAdvancesOnGoal(t *testing.T) {
	m := computerMatch(t, Medium, []PlayerSpawn{
		{Team: 0, Pos: geom.XY{X: 505, Y: 700}},
	})

	m.Step()
	require.True(t, m.Ball.Owned())

	before := m.Players[0].Pos
	m.Step()

	// Team 0 attacks the low-Y end.
	assert.Less(t, m.Players[0].Pos.Y, before.Y)
}

func TestControl_CarrierKicksAfterHoldoff(t *testing.T) {
	m := computerMatch(t, Hard, []PlayerSpawn{
		{Team: 0, Pos: geom.XY{X: 505, Y: 700}},
		{Team: 0, Pos: geom.XY{X: 500, Y: 500}},
	})

	kicked := false
	for i := 0; i < 120 && !kicked; i++ {
		m.Step()
		for _, e := range m.DrainEvents() {
			if e.Kind == EventKick {
				kicked = true
			}
		}
	}

	assert.True(t, kicked, "carrier releases the ball once its hold-off expires")
}

func TestMatch_Deterministic(t *testing.T) {
	spawns := []PlayerSpawn{
		{Team: 0, Pos: geom.XY{X: 505, Y: 700}},
		{Team: 0, Pos: geom.XY{X: 400, Y: 500}},
		{Team: 1, Pos: geom.XY{X: 600, Y: 900}},
		{Team: 1, Pos: geom.XY{X: 450, Y: 1000}},
	}

	a := computerMatch(t, Medium, spawns)
	b := computerMatch(t, Medium, spawns)

	for i := 0; i < 500; i++ {
		a.Step()
		b.Step()
	}

	assert.Equal(t, a.Ball.Pos, b.Ball.Pos)
	assert.Equal(t, a.Ball.Vel, b.Ball.Vel)
	assert.Equal(t, a.Ball.Owner(), b.Ball.Owner())
	assert.Equal(t, a.Players, b.Players)
}
