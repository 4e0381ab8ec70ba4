package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pitchside/engine/internal/sim"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Match{},
	&BallTick{},
	&PossessionEvent{},
	&MatchPerformance{},
}

// Match is the header row every other table hangs off.
type Match struct {
	gorm.Model
	Tag        string `json:"tag" gorm:"size:127"`
	Difficulty string `json:"difficulty" gorm:"size:15"`
	StartTime  time.Time
	EndTime    sql.NullTime
	EndFrame   uint64         `json:"endFrame"`
	Layout     datatypes.JSON `json:"layout"`
	Tuning     datatypes.JSON `json:"tuning"`
}

// BallTick is one per-frame ball sample.
type BallTick struct {
	ID      uint `gorm:"primarykey"`
	MatchID uint `gorm:"index:idx_balltick_match_frame"`
	Match   Match `json:"-"`
	Frame   uint64 `json:"frame" gorm:"index:idx_balltick_match_frame"`
	X       float64
	Y       float64
	VelX    float64
	VelY    float64
	// Owner is -1 while the ball is loose.
	Owner int16 `json:"owner"`
}

// PossessionEvent records a possession transition.
type PossessionEvent struct {
	ID      uint `gorm:"primarykey"`
	MatchID uint `gorm:"index"`
	Match   Match `json:"-"`
	Frame   uint64 `json:"frame"`
	Kind    string `json:"kind" gorm:"size:31;index"`
	Player  int16  `json:"player"`
	Team    uint8  `json:"team"`
	// From is the dispossessed player for a takeover, -1 otherwise.
	From int16   `json:"from"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// MatchPerformance holds simulation loop health samples.
type MatchPerformance struct {
	ID             uint `gorm:"primarykey"`
	MatchID        uint `gorm:"index"`
	Match          Match `json:"-"`
	Time           time.Time `json:"time"`
	TicksPerSecond float32   `json:"ticksPerSecond"`
	TickQueueDepth uint32    `json:"tickQueueDepth"`
	EventQueueLen  uint32    `json:"eventQueueLen"`
	LastWriteMs    float32   `json:"lastWriteMs"`
}

// BallTickFrom samples the live ball into a row. The match ID is stamped
// by the recorder once the header row exists.
func BallTickFrom(frame uint64, b *sim.Ball) BallTick {
	return BallTick{
		Frame: frame,
		X:     b.Pos.X,
		Y:     b.Pos.Y,
		VelX:  b.Vel.X,
		VelY:  b.Vel.Y,
		Owner: int16(b.Owner()),
	}
}

// PossessionEventFrom converts a simulation event into a row.
func PossessionEventFrom(e sim.Event) PossessionEvent {
	return PossessionEvent{
		Frame:  e.Frame,
		Kind:   string(e.Kind),
		Player: int16(e.Player),
		Team:   uint8(e.Team),
		From:   int16(e.From),
		X:      e.Pos.X,
		Y:      e.Pos.Y,
	}
}
