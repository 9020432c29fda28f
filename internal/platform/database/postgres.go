package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxAttempts  int
	RetryDelay   time.Duration
}

// NewPostgresDB opens the pool and waits for the server to accept connections.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitForDB(ctx, db, cfg); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func waitForDB(ctx context.Context, db *sql.DB, cfg Config) error {
	var err error
	for i := 1; i <= cfg.MaxAttempts; i++ {
		log.Info().Int("attempt", i).Int("max_attempts", cfg.MaxAttempts).Msg("connecting to database")

		err = db.PingContext(ctx)
		if err == nil {
			log.Info().Msg("database connected")
			return nil
		}

		log.Warn().Err(err).Dur("wait", cfg.RetryDelay).Msg("database not ready yet")

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for database")
		case <-time.After(cfg.RetryDelay):
		}
	}

	return errors.Wrapf(err, "database unreachable after %d attempts", cfg.MaxAttempts)
}
