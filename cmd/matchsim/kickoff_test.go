package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/engine/internal/pitch"
	"github.com/pitchside/engine/internal/sim"
)

func testField(t *testing.T) pitch.Field {
	t.Helper()
	f, err := pitch.NewField(pitch.Layout{
		LevelW:     1000,
		LevelH:     1400,
		HalfPitchW: 442,
		HalfPitchH: 622,
		GoalWidth:  186,
		GoalDepth:  20,
	})
	require.NoError(t, err)
	return f
}

func TestKickoffSpawnsOwnHalves(t *testing.T) {
	field := testField(t)
	spawns := kickoffSpawns(field, 7)

	require.Len(t, spawns, 14)
	for _, s := range spawns {
		assert.True(t, field.InPlay(s.Pos), "spawn at %v must be on the pitch", s.Pos)
		if s.Team == 0 {
			assert.Greater(t, s.Pos.Y, field.Center.Y)
		} else {
			assert.Less(t, s.Pos.Y, field.Center.Y)
		}
	}
}

func TestKickoffSpawnsBuildValidMatch(t *testing.T) {
	field := testField(t)
	spawns := kickoffSpawns(field, 5)

	teams := [2]sim.TeamSetup{
		{AttacksEnd: 0},
		{AttacksEnd: 1},
	}
	m, err := sim.NewMatch("kickoff", field, sim.DefaultTuning(), sim.Medium, teams, spawns)
	require.NoError(t, err)
	assert.Len(t, m.Players, 10)
}
