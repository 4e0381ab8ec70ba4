package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/engine/internal/model"
)

func startedBackend(t *testing.T, compress bool) *Backend {
	t.Helper()
	b := New(Config{OutputDir: t.TempDir(), CompressOutput: compress})
	require.NoError(t, b.Init())
	require.NoError(t, b.StartMatch(&model.Match{
		Tag:        "home vs away",
		Difficulty: "medium",
		StartTime:  time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC),
	}))
	return b
}

func TestEndMatchWithoutStartFails(t *testing.T) {
	b := New(Config{OutputDir: t.TempDir()})
	require.NoError(t, b.Init())
	assert.Error(t, b.EndMatch(0))
}

func TestExportPlainJSON(t *testing.T) {
	b := startedBackend(t, false)

	require.NoError(t, b.RecordBallTick(&model.BallTick{Frame: 1, X: 500, Y: 700, Owner: -1}))
	require.NoError(t, b.RecordBallTick(&model.BallTick{Frame: 2, X: 501, Y: 700, Owner: 3}))
	require.NoError(t, b.RecordPossessionEvent(&model.PossessionEvent{
		Frame: 2, Kind: "possession_gained", Player: 3, Team: 0, From: -1,
	}))
	require.NoError(t, b.EndMatch(2))

	path := b.GetExportedFilePath()
	require.NotEmpty(t, path)
	assert.Contains(t, path, "home_vs_away_20260502_150000.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export ReplayExport
	require.NoError(t, json.Unmarshal(data, &export))

	assert.Equal(t, "home vs away", export.Tag)
	assert.Equal(t, uint64(2), export.EndFrame)
	require.Len(t, export.Ticks, 2)
	assert.Len(t, export.Ticks[0], 6)
	require.Len(t, export.Events, 1)
	assert.Equal(t, "possession_gained", export.Events[0].Kind)
	assert.NotNil(t, export.Performance)
}

func TestExportGzip(t *testing.T) {
	b := startedBackend(t, true)

	require.NoError(t, b.RecordBallTick(&model.BallTick{Frame: 1, X: 1, Y: 2, Owner: -1}))
	require.NoError(t, b.EndMatch(1))

	path := b.GetExportedFilePath()
	assert.Contains(t, path, ".json.gz")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var export ReplayExport
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Len(t, export.Ticks, 1)
}

func TestStartMatchResetsBuffers(t *testing.T) {
	b := startedBackend(t, false)
	require.NoError(t, b.RecordBallTick(&model.BallTick{Frame: 1}))

	require.NoError(t, b.StartMatch(&model.Match{
		Tag:       "second",
		StartTime: time.Date(2026, 5, 3, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, b.EndMatch(0))

	data, err := os.ReadFile(b.GetExportedFilePath())
	require.NoError(t, err)

	var export ReplayExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Empty(t, export.Ticks)
}
