package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/NitishVankina/ServerPet/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	if cfg.DBPath == "" {
		return nil, errors.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errors.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errors.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS ticks (
            timestamp   INTEGER PRIMARY KEY,
            cpu         REAL NOT NULL,
            ram         REAL NOT NULL,
            disk        REAL NOT NULL,
            net_kbs     REAL NOT NULL,
            mood        TEXT NOT NULL,
            mood_changed INTEGER NOT NULL CHECK (mood_changed IN (0, 1)),
            alert_fired INTEGER NOT NULL CHECK (alert_fired IN (0, 1))
        )
    `)
	if err != nil {
		return errors.Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}

func (r *sqliteRepository) Store(ctx context.Context, snapshot engine.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO ticks (
            timestamp, cpu, ram, disk, net_kbs, mood, mood_changed, alert_fired
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            cpu = excluded.cpu,
            ram = excluded.ram,
            disk = excluded.disk,
            net_kbs = excluded.net_kbs,
            mood = excluded.mood,
            mood_changed = excluded.mood_changed,
            alert_fired = excluded.alert_fired
    `,
		snapshot.Timestamp.UnixMilli(),
		snapshot.CPU,
		snapshot.RAM,
		snapshot.Disk,
		snapshot.NetRateKBs,
		snapshot.Mood.String(),
		boolToInt(snapshot.MoodChanged),
		boolToInt(snapshot.AlertFired),
	)
	if err != nil {
		return errors.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.Wrap(ErrStorageClose, err)
	}

	return nil
}
