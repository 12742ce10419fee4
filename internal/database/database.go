package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the pgx pool the repositories run on. Connect is the only way to
// obtain one: it refuses to hand out a pool whose farm schema is not in
// place, so every repository can assume the tables exist.
type DB struct {
	Pool *pgxpool.Pool
}

// Options carries the pool settings from the environment config.
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// Connect opens the pool, checks the server answers, and brings the schema
// up before returning.
func Connect(ctx context.Context, opts Options) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = opts.MinConns
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	db := &DB{Pool: pool}
	if err := db.Health(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	slog.Info("database ready", "max_conns", opts.MaxConns, "min_conns", opts.MinConns)
	return db, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health reports whether the database still answers.
func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
