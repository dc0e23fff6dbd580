package db

import (
	"fmt"

	"github.com/rs/zerolog"

	"tippy-tappy/internal/config"
	"tippy-tappy/internal/tipping"
)

// OpenBackend picks the snapshot backend named by cfg.StoreDriver. The file
// driver with no path returns a nil Backend, which keeps the store in memory.
func OpenBackend(cfg config.Config, log zerolog.Logger) (tipping.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		if cfg.StorePath == "" {
			log.Warn().Msg("TIPPY_STORE_PATH is empty, state will not survive a restart")
			return nil, nil
		}
		log.Info().Str("path", cfg.StorePath).Msg("using file snapshots")
		return tipping.NewFileBackend(cfg.StorePath), nil
	case config.DriverPostgres:
		conn, err := Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := Migrate(conn); err != nil {
			return nil, err
		}
		log.Info().Msg("using postgres snapshots")
		return NewSnapshotRepo(conn, DefaultSnapshotName), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
