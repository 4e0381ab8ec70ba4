package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pitchside/engine/internal/config"
	gormstorage "github.com/pitchside/engine/internal/storage/gormdb"
	"github.com/pitchside/engine/internal/storage/memory"
	"github.com/pitchside/engine/internal/storage/websocket"
)

// NewBackend creates a storage backend based on configuration. The gorm
// backend needs an established database connection; the others do not.
func NewBackend(cfg config.StorageConfig, db *gorm.DB) (Backend, error) {
	switch cfg.Type {
	case "gorm", "postgres", "sqlite":
		if db == nil {
			return nil, fmt.Errorf("storage type %q requires a database connection", cfg.Type)
		}
		return gormstorage.New(db), nil
	case "websocket":
		return websocket.New(websocket.Config{
			URL:    cfg.Websocket.URL,
			Secret: cfg.Websocket.Secret,
		}), nil
	case "memory":
		return memory.New(memory.Config{
			OutputDir:      cfg.Memory.OutputDir,
			CompressOutput: cfg.Memory.CompressOutput,
		}), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
