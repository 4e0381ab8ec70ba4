// Package storage defines the recording backend interface and its factory.
package storage

import "github.com/pitchside/engine/internal/model"

// Backend is the interface all recording implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Match management. StartMatch assigns an ID to the passed pointer.
	StartMatch(m *model.Match) error
	EndMatch(endFrame uint64) error

	// Recording
	RecordBallTick(t *model.BallTick) error
	RecordPossessionEvent(e *model.PossessionEvent) error
	RecordPerformance(p *model.MatchPerformance) error
}

// Exportable is an optional interface for backends that produce a replay
// file on disk when the match ends.
type Exportable interface {
	GetExportedFilePath() string
}
