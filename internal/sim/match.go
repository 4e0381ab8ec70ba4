package sim

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/pitchside/engine/internal/pitch"
)

// TeamSetup configures one side at match creation.
type TeamSetup struct {
	Human      bool
	AttacksEnd int
}

// PlayerSpawn places one player at kickoff.
type PlayerSpawn struct {
	Team TeamID
	Pos  geom.XY
	Dir  float64
}

// Match owns the full simulation state for one game: the player pool, the
// two teams, the ball, and the frame counter. One Step call advances
// everything by exactly one fixed tick; given the same inputs a match
// replays deterministically.
type Match struct {
	ID    string
	Field pitch.Field

	Players []Player
	Teams   [2]Team
	Ball    Ball
	Frame   uint64

	tun        Tuning
	difficulty Difficulty
	events     []Event
}

// NewMatch builds a match with the ball at the center spot, no owner and
// all timers at zero. Tuning must already be validated.
func NewMatch(id string, field pitch.Field, tun Tuning, difficulty Difficulty, teams [2]TeamSetup, spawns []PlayerSpawn) (*Match, error) {
	if err := tun.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	if teams[0].AttacksEnd == teams[1].AttacksEnd {
		return nil, fmt.Errorf("both teams attack end %d", teams[0].AttacksEnd)
	}

	m := &Match{
		ID:         id,
		Field:      field,
		Ball:       NewBall(field.Center),
		tun:        tun,
		difficulty: difficulty,
	}
	for side, setup := range teams {
		m.Teams[side] = Team{
			Human:         setup.Human,
			ActiveControl: NoPlayer,
			AttacksEnd:    setup.AttacksEnd,
		}
	}
	for _, s := range spawns {
		if int(s.Team) >= len(m.Teams) {
			return nil, fmt.Errorf("spawn references team %d", s.Team)
		}
		m.Players = append(m.Players, Player{
			ID:   PlayerID(len(m.Players)),
			Team: s.Team,
			Pos:  s.Pos,
			Dir:  s.Dir,
		})
	}
	return m, nil
}

// Step advances the match by one tick: player hold-off timers count down,
// computer-controlled players move and may kick, then the ball runs its
// carry/physics step and the acquisition scan. Events raised during the
// tick accumulate until drained.
func (m *Match) Step() {
	m.Frame++

	for i := range m.Players {
		m.Players[i].Timer--
	}

	m.controlComputerPlayers()
	m.updateBall()
}

// DrainEvents returns the events raised since the previous drain and
// clears the buffer.
func (m *Match) DrainEvents() []Event {
	out := m.events
	m.events = nil
	return out
}

// Difficulty returns the configured difficulty level.
func (m *Match) Difficulty() Difficulty { return m.difficulty }

// Tuning returns the match constants.
func (m *Match) Tuning() Tuning { return m.tun }

// GoalTarget returns the goal mouth the given team attacks, labeled with
// that team so the pass heuristic treats it as a same-team target.
func (m *Match) GoalTarget(team TeamID) PointTarget {
	return PointTarget{
		Pos:  m.Field.GoalCenter(m.Teams[team].AttacksEnd),
		Team: team,
	}
}

func (m *Match) emit(e Event) {
	e.Frame = m.Frame
	m.events = append(m.events, e)
}

// playerAt resolves a handle to its pool slot. An out-of-range handle is
// an invariant violation with no valid recovery, so it panics.
func (m *Match) playerAt(id PlayerID) *Player {
	if id < 0 || int(id) >= len(m.Players) {
		panic(fmt.Sprintf("sim: invalid player handle %d (pool size %d)", id, len(m.Players)))
	}
	return &m.Players[id]
}
