// Package config loads and validates the matchsim configuration file via
// viper. All simulation tuning constants live here; anything out of range
// fails at load time so the simulation never sees a bad value mid-tick.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pitchside/engine/internal/pitch"
	"github.com/pitchside/engine/internal/sim"
)

// MemoryConfig holds in-memory/JSON storage backend settings.
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// WebsocketConfig holds live-streaming backend settings.
type WebsocketConfig struct {
	URL    string `json:"url" mapstructure:"url"`
	Secret string `json:"secret" mapstructure:"secret"`
}

// StorageConfig selects and configures the recording backend.
type StorageConfig struct {
	Type      string          `json:"type" mapstructure:"type"`
	Memory    MemoryConfig    `json:"memory" mapstructure:"memory"`
	Websocket WebsocketConfig `json:"websocket" mapstructure:"websocket"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// MatchConfig describes the match the binary should run.
type MatchConfig struct {
	Ticks          int  `mapstructure:"ticks"`
	PlayersPerSide int  `mapstructure:"playersPerSide"`
	HomeHuman      bool `mapstructure:"homeHuman"`
	AwayHuman      bool `mapstructure:"awayHuman"`
}

// Load reads configuration from a JSON file in configDir and sets default
// values. A missing or unreadable file is a startup error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./matchlogs")

	viper.SetDefault("tuning.drag", 0.98)
	viper.SetDefault("tuning.kickStrength", 11.5)
	viper.SetDefault("tuning.looseBallKick", 3.0)
	viper.SetDefault("tuning.dribbleDistX", 18.0)
	viper.SetDefault("tuning.dribbleDistY", 16.0)
	viper.SetDefault("tuning.passRange", 300.0)
	viper.SetDefault("tuning.coneThreshold", 0.8)
	viper.SetDefault("tuning.dispossessHoldoff", 60)
	viper.SetDefault("tuning.kickHoldoff", 10)
	viper.SetDefault("tuning.playerSpeed", 2.0)

	viper.SetDefault("pitch.levelW", 1000.0)
	viper.SetDefault("pitch.levelH", 1400.0)
	viper.SetDefault("pitch.halfPitchW", 442.0)
	viper.SetDefault("pitch.halfPitchH", 622.0)
	viper.SetDefault("pitch.goalWidth", 186.0)
	viper.SetDefault("pitch.goalDepth", 20.0)

	viper.SetDefault("match.difficulty", "medium")
	viper.SetDefault("match.ticks", 18000)
	viper.SetDefault("match.playersPerSide", 7)
	viper.SetDefault("match.homeHuman", false)
	viper.SetDefault("match.awayHuman", false)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./recordings")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.websocket.url", "ws://localhost:5001/stream")
	viper.SetDefault("storage.websocket.secret", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "matchsim")
	viper.SetDefault("db.sqlitePath", "./matchsim.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "matchsim-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "matchsim")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName("matchsim.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	// Fail bad numeric constants now rather than mid-simulation.
	if _, err := GetTuning(); err != nil {
		return err
	}
	if _, err := GetLayout(); err != nil {
		return err
	}
	if _, err := GetDifficulty(); err != nil {
		return err
	}

	return nil
}

// GetTuning returns the validated simulation constants.
func GetTuning() (sim.Tuning, error) {
	var t sim.Tuning
	if err := viper.UnmarshalKey("tuning", &t); err != nil {
		return sim.Tuning{}, fmt.Errorf("tuning config: %w", err)
	}
	if err := t.Validate(); err != nil {
		return sim.Tuning{}, fmt.Errorf("tuning config: %w", err)
	}
	return t, nil
}

// GetLayout returns the validated pitch geometry.
func GetLayout() (pitch.Layout, error) {
	var l pitch.Layout
	if err := viper.UnmarshalKey("pitch", &l); err != nil {
		return pitch.Layout{}, fmt.Errorf("pitch config: %w", err)
	}
	if err := l.Validate(); err != nil {
		return pitch.Layout{}, fmt.Errorf("pitch config: %w", err)
	}
	return l, nil
}

// GetDifficulty returns the configured difficulty level.
func GetDifficulty() (sim.Difficulty, error) {
	d, err := sim.ParseDifficulty(viper.GetString("match.difficulty"))
	if err != nil {
		return 0, fmt.Errorf("match config: %w", err)
	}
	return d, nil
}

// GetMatchConfig returns the match parameters for the binary.
func GetMatchConfig() (MatchConfig, error) {
	var m MatchConfig
	if err := viper.UnmarshalKey("match", &m); err != nil {
		return MatchConfig{}, fmt.Errorf("match config: %w", err)
	}
	if m.Ticks <= 0 {
		return MatchConfig{}, fmt.Errorf("match config: ticks must be positive, got %d", m.Ticks)
	}
	if m.PlayersPerSide <= 0 {
		return MatchConfig{}, fmt.Errorf("match config: playersPerSide must be positive, got %d", m.PlayersPerSide)
	}
	return m, nil
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		Websocket: WebsocketConfig{
			URL:    viper.GetString("storage.websocket.url"),
			Secret: viper.GetString("storage.websocket.secret"),
		},
	}
}

// GetOTelConfig returns the OTel settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
