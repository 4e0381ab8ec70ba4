// Package gormdb implements the storage.Backend interface on top of a gorm
// connection (Postgres or SQLite). Rows are buffered and flushed in batches
// so the simulation loop never waits on the database.
package gormdb

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/pitchside/engine/internal/model"
)

const flushThreshold = 500

// Backend writes match data through gorm.
type Backend struct {
	db    *gorm.DB
	match *model.Match

	pendingTicks  []model.BallTick
	pendingEvents []model.PossessionEvent

	lastWriteDuration time.Duration
	mu                sync.Mutex
}

// New creates a new gorm storage backend on an established connection.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// Init verifies the connection is usable.
func (b *Backend) Init() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Ping()
}

// Close flushes any buffered rows.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

// StartMatch inserts the match header row and stamps its ID back.
func (b *Backend) StartMatch(m *model.Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	b.match = m
	b.pendingTicks = nil
	b.pendingEvents = nil
	return nil
}

// EndMatch flushes buffers and stamps the end of the match.
func (b *Backend) EndMatch(endFrame uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return fmt.Errorf("no match in progress")
	}
	if err := b.flushLocked(); err != nil {
		return err
	}

	err := b.db.Model(b.match).
		Updates(map[string]interface{}{
			"end_frame": endFrame,
			"end_time":  time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to finalize match: %w", err)
	}
	b.match = nil
	return nil
}

// RecordBallTick buffers a ball sample for the next batch write.
func (b *Backend) RecordBallTick(t *model.BallTick) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return fmt.Errorf("no match in progress")
	}
	row := *t
	row.MatchID = b.match.ID
	b.pendingTicks = append(b.pendingTicks, row)

	if len(b.pendingTicks) >= flushThreshold {
		return b.flushLocked()
	}
	return nil
}

// RecordPossessionEvent buffers a possession transition.
func (b *Backend) RecordPossessionEvent(e *model.PossessionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return fmt.Errorf("no match in progress")
	}
	row := *e
	row.MatchID = b.match.ID
	b.pendingEvents = append(b.pendingEvents, row)
	return nil
}

// RecordPerformance writes a loop health sample immediately. These arrive
// once a second at most, batching buys nothing.
func (b *Backend) RecordPerformance(p *model.MatchPerformance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return fmt.Errorf("no match in progress")
	}
	row := *p
	row.MatchID = b.match.ID
	if err := b.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert performance sample: %w", err)
	}
	return nil
}

// GetLastDBWriteDuration returns how long the most recent flush took.
func (b *Backend) GetLastDBWriteDuration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastWriteDuration
}

// flushLocked writes all buffered rows. Caller holds the lock.
func (b *Backend) flushLocked() error {
	if len(b.pendingTicks) == 0 && len(b.pendingEvents) == 0 {
		return nil
	}

	start := time.Now()

	if len(b.pendingTicks) > 0 {
		if err := b.db.Create(&b.pendingTicks).Error; err != nil {
			return fmt.Errorf("failed to insert ball ticks: %w", err)
		}
		b.pendingTicks = nil
	}
	if len(b.pendingEvents) > 0 {
		if err := b.db.Create(&b.pendingEvents).Error; err != nil {
			return fmt.Errorf("failed to insert possession events: %w", err)
		}
		b.pendingEvents = nil
	}

	b.lastWriteDuration = time.Since(start)
	return nil
}
