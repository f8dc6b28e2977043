package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/logger"
)

// ClientStorages groups the client-side storage components.
type ClientStorages struct {
	// Local is the key/value store selected by configuration.
	Local LocalStorage

	// Session keeps the bearer token and cached profile in Local.
	Session SessionStore
}

// NewClientStorages opens the local storage backend named by cfg.Driver:
//   - sqlite: opens cfg.DSN, creating it when missing, and runs migrations;
//   - bolt: opens the bbolt file at cfg.DSN;
//   - memory: keeps everything in process memory.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		local LocalStorage
		err   error
	)
	switch cfg.Driver {
	case config.DriverSQLite, "":
		var db *DB
		db, err = NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		local = NewSQLiteLocalStorage(db, log)
	case config.DriverBolt:
		local, err = NewBoltLocalStorage(cfg.DSN)
		if err != nil {
			return nil, err
		}
	case config.DriverMemory:
		local = NewMemoryLocalStorage()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Driver)
	}

	return &ClientStorages{
		Local:   local,
		Session: NewSessionStore(local),
	}, nil
}

// Close closes the local storage backend.
func (s *ClientStorages) Close() error {
	return s.Local.Close()
}
