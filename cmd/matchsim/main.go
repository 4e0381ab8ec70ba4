// Command matchsim runs a headless match simulation and records every ball
// tick and possession transition to the configured storage backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pitchside/engine/internal/config"
	"github.com/pitchside/engine/internal/database"
	"github.com/pitchside/engine/internal/influx"
	"github.com/pitchside/engine/internal/logging"
	"github.com/pitchside/engine/internal/model"
	intOtel "github.com/pitchside/engine/internal/otel"
	"github.com/pitchside/engine/internal/pitch"
	"github.com/pitchside/engine/internal/queue"
	"github.com/pitchside/engine/internal/sim"
	"github.com/pitchside/engine/internal/storage"
	"github.com/pitchside/engine/internal/worker"
)

var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

const (
	flushInterval = 250 * time.Millisecond
	perfInterval  = time.Second
)

func main() {
	configDir := flag.String("config", ".", "directory containing matchsim.cfg.json")
	tag := flag.String("tag", "home vs away", "match tag used in recordings")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("matchsim %s (built %s)\n", Version, BuildDate)
		return
	}

	if err := run(*configDir, *tag); err != nil {
		fmt.Fprintln(os.Stderr, "matchsim:", err)
		os.Exit(1)
	}
}

func run(configDir, tag string) error {
	sessionStart := time.Now()

	if err := config.Load(configDir); err != nil {
		return err
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// OTel before logging so the slog bridge can attach.
	otelCfg := config.GetOTelConfig()
	var otelLogFile *os.File
	var logProvider *sdklog.LoggerProvider
	if otelCfg.Enabled {
		var err error
		otelLogFile, err = os.Create(logging.LogFilePath(logsDir, "matchsim.otel", sessionStart))
		if err != nil {
			return fmt.Errorf("failed to create OTel log file: %w", err)
		}
		defer otelLogFile.Close()
	}
	otelProvider, err := intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    otelLogFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		return fmt.Errorf("failed to set up OTel: %w", err)
	}
	defer otelProvider.Shutdown(context.Background())
	logProvider = otelProvider.LoggerProvider()

	logFile, err := os.Create(logging.LogFilePath(logsDir, "matchsim", sessionStart))
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logFile, config.GetString("logLevel"), logProvider)
	logger := slogManager.Logger()
	defer slogManager.Flush(context.Background())

	logger.Info("Starting matchsim", "version", Version, "tag", tag)

	// Database only when the backend needs one.
	storageCfg := config.GetStorageConfig()
	var db *gorm.DB
	switch storageCfg.Type {
	case "gorm", "postgres", "sqlite":
		zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()
		dbManager := database.NewManager(zlog)
		if err := dbManager.Connect(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer dbManager.Close()
		db = dbManager.DB
	}

	backend, err := storage.NewBackend(storageCfg, db)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("storage backend init: %w", err)
	}
	defer backend.Close()

	// Influx is best-effort; a dead metrics server never stops a match.
	var influxManager *influx.Manager
	if config.GetBool("influx.enabled") {
		zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()
		influxManager = influx.NewManager(zlog, filepath.Join(logsDir, "influx_backup.gz"))
		if err := influxManager.Connect(); err != nil {
			logger.Warn("Influx unavailable", "error", err)
			influxManager = nil
		} else {
			defer influxManager.Close()
		}
	}

	match, err := buildMatch(tag)
	if err != nil {
		return err
	}
	matchCfg, err := config.GetMatchConfig()
	if err != nil {
		return err
	}

	header, err := matchHeader(tag, match, sessionStart)
	if err != nil {
		return err
	}
	if err := backend.StartMatch(header); err != nil {
		return fmt.Errorf("start match: %w", err)
	}

	ticks := queue.New[model.BallTick]()
	events := queue.New[model.PossessionEvent]()
	recorder, err := worker.NewRecorder(worker.Dependencies{
		Backend:  backend,
		Ticks:    ticks,
		Events:   events,
		Logger:   logger,
		Influx:   influxManager,
		MatchTag: tag,
	}, flushInterval)
	if err != nil {
		return err
	}
	recorder.Start()

	logger.Info("Match started",
		"players", len(match.Players),
		"difficulty", match.Difficulty().String(),
		"ticks", matchCfg.Ticks,
	)

	lastPerf := time.Now()
	lastPerfFrame := uint64(0)
	for i := 0; i < matchCfg.Ticks; i++ {
		match.Step()

		ticks.Push(model.BallTickFrom(match.Frame, &match.Ball))
		for _, e := range match.DrainEvents() {
			events.Push(model.PossessionEventFrom(e))
		}

		if elapsed := time.Since(lastPerf); elapsed >= perfInterval {
			sample := model.MatchPerformance{
				Time:           time.Now().UTC(),
				TicksPerSecond: float32(float64(match.Frame-lastPerfFrame) / elapsed.Seconds()),
				TickQueueDepth: uint32(ticks.Len()),
				EventQueueLen:  uint32(events.Len()),
				LastWriteMs:    float32(recorder.GetLastDBWriteDuration().Seconds() * 1000),
			}
			if err := backend.RecordPerformance(&sample); err != nil {
				logger.Warn("Performance sample dropped", "error", err)
			}
			if influxManager != nil {
				if err := influxManager.WritePerformance(context.Background(), tag, sample); err != nil {
					logger.Warn("Influx performance write failed", "error", err)
				}
			}
			lastPerf = time.Now()
			lastPerfFrame = match.Frame
		}
	}

	recorder.Stop()
	if err := backend.EndMatch(match.Frame); err != nil {
		return fmt.Errorf("end match: %w", err)
	}

	logger.Info("Match finished", "frames", match.Frame)
	if exp, ok := backend.(storage.Exportable); ok {
		logger.Info("Replay exported", "path", exp.GetExportedFilePath())
	}

	return nil
}

// buildMatch assembles the simulation from configuration.
func buildMatch(tag string) (*sim.Match, error) {
	layout, err := config.GetLayout()
	if err != nil {
		return nil, err
	}
	field, err := pitch.NewField(layout)
	if err != nil {
		return nil, err
	}
	tun, err := config.GetTuning()
	if err != nil {
		return nil, err
	}
	difficulty, err := config.GetDifficulty()
	if err != nil {
		return nil, err
	}
	matchCfg, err := config.GetMatchConfig()
	if err != nil {
		return nil, err
	}

	teams := [2]sim.TeamSetup{
		{Human: matchCfg.HomeHuman, AttacksEnd: 0},
		{Human: matchCfg.AwayHuman, AttacksEnd: 1},
	}
	spawns := kickoffSpawns(field, matchCfg.PlayersPerSide)

	return sim.NewMatch(tag, field, tun, difficulty, teams, spawns)
}

// matchHeader builds the database header row, embedding the layout and
// tuning actually used so a replay is self-describing.
func matchHeader(tag string, match *sim.Match, start time.Time) (*model.Match, error) {
	layout, err := config.GetLayout()
	if err != nil {
		return nil, err
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	tuningJSON, err := json.Marshal(match.Tuning())
	if err != nil {
		return nil, fmt.Errorf("marshal tuning: %w", err)
	}

	return &model.Match{
		Tag:        tag,
		Difficulty: match.Difficulty().String(),
		StartTime:  start.UTC(),
		Layout:     datatypes.JSON(layoutJSON),
		Tuning:     datatypes.JSON(tuningJSON),
	}, nil
}
