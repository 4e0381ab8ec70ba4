package sim

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/pitchside/engine/internal/vec"
)

// controlComputerPlayers runs the minimal per-tick behavior for
// computer-controlled teams: the carrier advances on the opposing goal and
// kicks to the best available target once the ball's hold-off expires,
// while everyone else closes on the ball. Human teams are steered by the
// input layer and are left alone here.
func (m *Match) controlComputerPlayers() {
	for i := range m.Players {
		p := &m.Players[i]
		if m.Teams[p.Team].Human {
			continue
		}

		if m.Ball.Owner() == p.ID {
			m.controlCarrier(p)
		} else {
			m.chaseBall(p)
		}
	}
}

// controlCarrier drives the player holding the ball: face the goal, keep
// moving, and release the ball to the best target as soon as the ball's
// hold-off timer allows.
func (m *Match) controlCarrier(p *Player) {
	goal := m.GoalTarget(p.Team)
	m.moveToward(p, goal.Pos)

	if !m.Ball.HoldoffExpired() {
		return
	}

	if target, ok := m.bestPassTarget(p); ok {
		dir, _ := vec.SafeNormalize(target.TargetPos().Sub(p.Pos))
		p.Dir = math.Atan2(-dir.Y, dir.X)
		m.Kick(dir, m.tun.KickStrength)
	}
}

// bestPassTarget picks among targetable teammates (and the goal mouth) the
// one whose pass arrives in the fewest physics ticks. Returns false when
// nothing is worth the kick.
func (m *Match) bestPassTarget(source *Player) (Target, bool) {
	var (
		best      Target
		bestTicks = math.MaxInt
	)

	consider := func(t Target) {
		if !targetable(t, source, m.Players, m.Teams[source.Team].Human, m.tun) {
			return
		}
		ticks := StepsToTravel(vec.Dist(t.TargetPos(), source.Pos), m.tun.KickStrength, m.tun.Drag)
		if ticks < bestTicks {
			best, bestTicks = t, ticks
		}
	}

	consider(m.GoalTarget(source.Team))
	for i := range m.Players {
		mate := &m.Players[i]
		if mate.ID == source.ID || mate.Team != source.Team {
			continue
		}
		consider(mate)
	}

	return best, best != nil
}

// chaseBall walks an off-ball player toward the ball.
func (m *Match) chaseBall(p *Player) {
	m.moveToward(p, m.Ball.Pos)
}

// moveToward advances p one tick of movement toward dest and turns the
// player to face the travel direction. Coincident points leave the player
// in place.
func (m *Match) moveToward(p *Player, dest geom.XY) {
	dir, dist := vec.SafeNormalize(dest.Sub(p.Pos))
	if dist == 0 {
		return
	}

	step := m.tun.PlayerSpeed
	if dist < step {
		step = dist
	}
	p.Pos = p.Pos.Add(dir.Scale(step))
	p.Dir = math.Atan2(-dir.Y, dir.X)
}
