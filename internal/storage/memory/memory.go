// Package memory buffers a whole match in memory and exports it to a JSON
// replay file when the match ends.
package memory

import (
	"fmt"
	"sync"

	"github.com/pitchside/engine/internal/model"
)

// Config holds memory backend configuration.
type Config struct {
	OutputDir      string
	CompressOutput bool
}

// Backend stores match data in memory and exports to JSON.
type Backend struct {
	cfg   Config
	match *model.Match

	ticks       []model.BallTick
	events      []model.PossessionEvent
	performance []model.MatchPerformance

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartMatch begins recording a new match and resets all buffers.
func (b *Backend) StartMatch(m *model.Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m.ID = 1
	b.match = m
	b.ticks = nil
	b.events = nil
	b.performance = nil
	b.lastExportPath = ""
	return nil
}

// EndMatch finalizes and exports the match data.
func (b *Backend) EndMatch(endFrame uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return fmt.Errorf("no match in progress")
	}
	b.match.EndFrame = endFrame
	return b.exportJSON()
}

// RecordBallTick appends a ball sample.
func (b *Backend) RecordBallTick(t *model.BallTick) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ticks = append(b.ticks, *t)
	return nil
}

// RecordPossessionEvent appends a possession transition.
func (b *Backend) RecordPossessionEvent(e *model.PossessionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, *e)
	return nil
}

// RecordPerformance appends a loop health sample.
func (b *Backend) RecordPerformance(p *model.MatchPerformance) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.performance = append(b.performance, *p)
	return nil
}

// GetExportedFilePath returns the path of the last exported replay file.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
