package worker

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/engine/internal/model"
	"github.com/pitchside/engine/internal/queue"
)

// fakeBackend counts writes and can be told to fail.
type fakeBackend struct {
	mu     sync.Mutex
	ticks  []model.BallTick
	events []model.PossessionEvent
	fail   bool
}

func (f *fakeBackend) Init() error { return nil }
func (f *fakeBackend) Close() error { return nil }
func (f *fakeBackend) StartMatch(m *model.Match) error { return nil }
func (f *fakeBackend) EndMatch(endFrame uint64) error { return nil }

func (f *fakeBackend) RecordBallTick(t *model.BallTick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("backend down")
	}
	f.ticks = append(f.ticks, *t)
	return nil
}

func (f *fakeBackend) RecordPossessionEvent(e *model.PossessionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("backend down")
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeBackend) RecordPerformance(p *model.MatchPerformance) error { return nil }

func (f *fakeBackend) tickCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ticks)
}

func testRecorder(t *testing.T, backend *fakeBackend) (*Recorder, *queue.Queue[model.BallTick], *queue.Queue[model.PossessionEvent]) {
	t.Helper()
	ticks := queue.New[model.BallTick]()
	events := queue.New[model.PossessionEvent]()
	r, err := NewRecorder(Dependencies{
		Backend: backend,
		Ticks:   ticks,
		Events:  events,
		Logger:  slog.Default(),
	}, 10*time.Millisecond)
	require.NoError(t, err)
	return r, ticks, events
}

func TestNewRecorderValidation(t *testing.T) {
	_, err := NewRecorder(Dependencies{}, time.Second)
	assert.Error(t, err)

	_, err = NewRecorder(Dependencies{
		Backend: &fakeBackend{},
		Ticks:   queue.New[model.BallTick](),
		Events:  queue.New[model.PossessionEvent](),
		Logger:  slog.Default(),
	}, 0)
	assert.Error(t, err)
}

func TestFlushDrainsBothQueues(t *testing.T) {
	backend := &fakeBackend{}
	r, ticks, events := testRecorder(t, backend)

	ticks.Push(
		model.BallTick{Frame: 1, X: 500, Y: 700, Owner: -1},
		model.BallTick{Frame: 2, X: 501, Y: 700, Owner: -1},
	)
	events.Push(model.PossessionEvent{Frame: 2, Kind: "possession_gained", Player: 3})

	require.NoError(t, r.Flush())

	assert.Equal(t, 2, backend.tickCount())
	assert.Len(t, backend.events, 1)
	assert.True(t, ticks.Empty())
	assert.True(t, events.Empty())
}

func TestFlushPropagatesBackendError(t *testing.T) {
	backend := &fakeBackend{fail: true}
	r, ticks, _ := testRecorder(t, backend)

	ticks.Push(model.BallTick{Frame: 1})
	assert.Error(t, r.Flush())
}

func TestStopPerformsFinalDrain(t *testing.T) {
	backend := &fakeBackend{}
	r, ticks, _ := testRecorder(t, backend)

	r.Start()
	ticks.Push(model.BallTick{Frame: 1})
	r.Stop()

	assert.Equal(t, 1, backend.tickCount())
}

func TestLoopFlushesOnInterval(t *testing.T) {
	backend := &fakeBackend{}
	r, ticks, _ := testRecorder(t, backend)

	r.Start()
	defer r.Stop()

	ticks.Push(model.BallTick{Frame: 1})

	require.Eventually(t, func() bool {
		return backend.tickCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestGetLastDBWriteDurationWithoutProviderIsZero(t *testing.T) {
	backend := &fakeBackend{}
	r, _, _ := testRecorder(t, backend)
	assert.Equal(t, time.Duration(0), r.GetLastDBWriteDuration())
}
