package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchside/engine/internal/model"
)

// ReplayExport is the root JSON structure of an exported match.
type ReplayExport struct {
	Tag         string                   `json:"tag"`
	Difficulty  string                   `json:"difficulty"`
	StartTime   string                   `json:"startTime"`
	EndFrame    uint64                   `json:"endFrame"`
	Ticks       [][]any                  `json:"ticks"`
	Events      []model.PossessionEvent  `json:"events"`
	Performance []model.MatchPerformance `json:"performance"`
}

// exportJSON writes the match data to a (optionally gzipped) JSON file.
// Caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	tag := strings.ReplaceAll(b.match.Tag, " ", "_")
	tag = strings.ReplaceAll(tag, ":", "_")
	timestamp := b.match.StartTime.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", tag, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", tag, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() ReplayExport {
	export := ReplayExport{
		Tag:         b.match.Tag,
		Difficulty:  b.match.Difficulty,
		StartTime:   b.match.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		EndFrame:    b.match.EndFrame,
		Events:      b.events,
		Performance: b.performance,
	}

	// Ticks are stored positionally to keep replay files small:
	// [frame, x, y, velX, velY, owner]
	export.Ticks = make([][]any, 0, len(b.ticks))
	for _, t := range b.ticks {
		export.Ticks = append(export.Ticks, []any{
			t.Frame, t.X, t.Y, t.VelX, t.VelY, t.Owner,
		})
	}

	if export.Events == nil {
		export.Events = []model.PossessionEvent{}
	}
	if export.Performance == nil {
		export.Performance = []model.MatchPerformance{}
	}

	return export
}

func (b *Backend) writeJSON(path string, export ReplayExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func (b *Backend) writeGzipJSON(path string, export ReplayExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(export); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return gz.Close()
}
