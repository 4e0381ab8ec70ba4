package sim

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// EventKind labels a possession change worth recording.
type EventKind string

const (
	// EventPossessionGained fires when a player acquires or takes the ball.
	EventPossessionGained EventKind = "possession_gained"
	// EventPossessionLost fires when a carrier is forced off the pitch and
	// the ball comes loose.
	EventPossessionLost EventKind = "possession_lost"
	// EventKick fires when a player deliberately passes or shoots.
	EventKick EventKind = "kick"
)

// Event describes one possession transition during a tick.
type Event struct {
	Frame  uint64
	Kind   EventKind
	Player PlayerID
	Team   TeamID
	// From is the previous owner for a takeover, NoPlayer otherwise.
	From PlayerID
	Pos  geom.XY
}
