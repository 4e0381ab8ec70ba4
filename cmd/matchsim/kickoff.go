package main

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/pitchside/engine/internal/pitch"
	"github.com/pitchside/engine/internal/sim"
)

// Fractions of the half-pitch depth each formation row stands at.
var rowDepths = []float64{0.2, 0.45, 0.7}

// kickoffSpawns lays each side out in its own half, facing the goal it
// attacks. Team 0 attacks the near end (low y), team 1 the far end.
func kickoffSpawns(field pitch.Field, perSide int) []sim.PlayerSpawn {
	spawns := make([]sim.PlayerSpawn, 0, perSide*2)

	width := field.PitchX.Max - field.PitchX.Min
	halfDepth := field.Center.Y - field.PitchY.Min

	for team := sim.TeamID(0); team < 2; team++ {
		// Dir 0 faces +x; pi/2 faces -y toward the near goal.
		facing := math.Pi / 2
		sign := 1.0
		if team == 1 {
			facing = -math.Pi / 2
			sign = -1.0
		}

		for i := 0; i < perSide; i++ {
			row := i % len(rowDepths)
			col := i/len(rowDepths) + 1
			cols := (perSide+len(rowDepths)-1)/len(rowDepths) + 1

			x := field.PitchX.Min + width*float64(col)/float64(cols)
			y := field.Center.Y + sign*halfDepth*rowDepths[row]

			spawns = append(spawns, sim.PlayerSpawn{
				Team: team,
				Pos:  geom.XY{X: x, Y: y},
				Dir:  facing,
			})
		}
	}

	return spawns
}
