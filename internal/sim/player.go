package sim

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// TeamID identifies one of the two teams.
type TeamID uint8

// PlayerID is a stable index into the match's player pool. Players are
// stored in a contiguous slice and always addressed by index, so the ball
// update can mutate the current owner while scanning the whole pool without
// holding two references to the same slot.
type PlayerID int

// NoPlayer marks the absence of an owner.
const NoPlayer PlayerID = -1

// Player is a match participant. The simulation core reads position,
// facing and team, and writes only the hold-off timer.
type Player struct {
	ID   PlayerID
	Team TeamID

	// Pos is the player's position in world units.
	Pos geom.XY
	// Dir is the facing angle in radians; zero faces +X.
	Dir float64
	// Timer counts down hold-off frames. The player may acquire the ball
	// only while it is strictly negative.
	Timer int
}

// TargetPos implements Target.
func (p *Player) TargetPos() geom.XY { return p.Pos }

// TargetTeam implements Target.
func (p *Player) TargetTeam() TeamID { return p.Team }

// Team groups per-team control state.
type Team struct {
	// Human is true when this team is controlled by a person. Human teams
	// skip the interception-avoidance half of the pass heuristic.
	Human bool
	// ActiveControl is the player currently holding (or last holding)
	// possession for this team; the input layer steers this player.
	ActiveControl PlayerID
	// AttacksEnd is the goal end (0 or 1) this team shoots at.
	AttacksEnd int
}

// Target is anything a pass can be aimed at: a teammate, or a synthetic
// point such as a goal mouth labeled with the defending team.
type Target interface {
	TargetPos() geom.XY
	TargetTeam() TeamID
}

// PointTarget is a fixed world point carrying a team label, used to aim
// shots at a goal mouth.
type PointTarget struct {
	Pos  geom.XY
	Team TeamID
}

// TargetPos implements Target.
func (t PointTarget) TargetPos() geom.XY { return t.Pos }

// TargetTeam implements Target.
func (t PointTarget) TargetTeam() TeamID { return t.Team }
