package sim

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/pitchside/engine/internal/vec"
)

// Ball is the single match ball. It is created once at kickoff and only
// ever repositioned. While owned, Vel is unused for integration; it is set
// solely as an impulse at the moment possession is lost.
type Ball struct {
	Pos geom.XY
	Vel geom.XY
	// Shadow is the visual shadow projection; it mirrors Pos every tick
	// and has no physics of its own.
	Shadow geom.XY

	// timer blocks ownership changes for a difficulty-dependent number of
	// frames after each transfer. Decremented every tick.
	timer int
	owner PlayerID
}

// NewBall places a ball at the given spot with no velocity and no owner.
func NewBall(at geom.XY) Ball {
	return Ball{Pos: at, Shadow: at, owner: NoPlayer}
}

// Owner returns the current owner, or NoPlayer.
func (b *Ball) Owner() PlayerID { return b.owner }

// Owned reports whether a player is carrying the ball.
func (b *Ball) Owned() bool { return b.owner != NoPlayer }

// HoldoffExpired reports whether the ball may be kicked on by a
// computer-controlled carrier.
func (b *Ball) HoldoffExpired() bool { return b.timer < 0 }

// updateBall runs one tick of ball simulation: the carry/physics step for
// the current mode, the shadow mirror, then the acquisition scan.
func (m *Match) updateBall() {
	b := &m.Ball
	b.timer--

	if b.owner != NoPlayer {
		m.stepCarried()
	} else {
		m.stepFree()
	}

	b.Shadow = b.Pos

	m.scanForAcquisition()
}

// stepCarried eases the ball toward a point ahead of its carrier. The X
// and Y offsets differ, so the carried ball traces an ellipse around the
// player rather than a circle. If the blended position leaves the playing
// area the carrier loses the ball on the spot.
func (m *Match) stepCarried() {
	b := &m.Ball
	owner := m.playerAt(b.owner)
	facing := vec.AngleToVec(owner.Dir)

	next := geom.XY{
		X: avg(b.Pos.X, owner.Pos.X+m.tun.DribbleDistX*facing.X),
		Y: avg(b.Pos.Y, owner.Pos.Y+m.tun.DribbleDistY*facing.Y),
	}

	if m.Field.InPlay(next) {
		b.Pos = next
		return
	}

	// Carried out of play: stamp the ex-owner so they cannot instantly
	// reacquire, send the ball on with a small impulse in their direction
	// of travel, and release it.
	owner.Timer = m.tun.DispossessHoldoff
	b.Vel = facing.Scale(m.tun.LooseBallKick)
	lost := b.owner
	b.owner = NoPlayer

	m.emit(Event{
		Kind:   EventPossessionLost,
		Player: lost,
		Team:   owner.Team,
		From:   NoPlayer,
		Pos:    b.Pos,
	})
}

// stepFree integrates the loose ball one axis at a time. Each axis's bound
// pair depends on the ball's position on the other axis: vertically past
// the end line it is inside a goal mouth and can only move between the
// posts, and horizontally between the posts it may run to the back of the
// net.
func (m *Match) stepFree() {
	b := &m.Ball

	boundsX := m.Field.BoundsX(b.Pos.Y)
	boundsY := m.Field.BoundsY(b.Pos.X)

	b.Pos.X, b.Vel.X = AxisStep(b.Pos.X, b.Vel.X, boundsX, m.tun.Drag)
	b.Pos.Y, b.Vel.Y = AxisStep(b.Pos.Y, b.Vel.Y, boundsY, m.tun.Drag)
}

// scanForAcquisition walks the player pool once, in pool order, handing the
// ball to the first qualifying candidate it meets. A candidate qualifies
// when the ball is loose or the candidate opposes the current owner, the
// candidate's own hold-off has expired (strictly negative), and the
// candidate is within possession contact distance. The owner context is
// re-read on every iteration, so candidates later in the pool are judged
// against a new owner installed earlier in the same scan.
func (m *Match) scanForAcquisition() {
	b := &m.Ball

	for i := range m.Players {
		candidate := &m.Players[i]

		if b.owner != NoPlayer && m.playerAt(b.owner).Team == candidate.Team {
			continue
		}
		if candidate.Timer >= 0 || vec.Dist(candidate.Pos, b.Pos) > m.tun.DribbleDistX {
			continue
		}

		prev := b.owner
		if prev != NoPlayer {
			// Takeover: the dispossessed player sits out before they may
			// win the ball back.
			m.playerAt(prev).Timer = m.tun.DispossessHoldoff
		}

		b.timer = m.difficulty.HoldoffFrames()
		b.owner = candidate.ID
		m.Teams[candidate.Team].ActiveControl = candidate.ID

		m.emit(Event{
			Kind:   EventPossessionGained,
			Player: candidate.ID,
			Team:   candidate.Team,
			From:   prev,
			Pos:    b.Pos,
		})
	}
}

// Kick releases the ball from its carrier toward dir (a unit vector) at
// the given strength, stamping the kicker with the short post-kick
// hold-off. Panics if the ball is not owned — kicking a loose ball is a
// programming error.
func (m *Match) Kick(dir geom.XY, strength float64) {
	b := &m.Ball
	if b.owner == NoPlayer {
		panic("sim: kick of unowned ball")
	}

	kicker := m.playerAt(b.owner)
	kicker.Timer = m.tun.KickHoldoff
	b.Vel = dir.Scale(strength)
	kicked := b.owner
	b.owner = NoPlayer

	m.emit(Event{
		Kind:   EventKick,
		Player: kicked,
		Team:   kicker.Team,
		From:   NoPlayer,
		Pos:    b.Pos,
	})
}
