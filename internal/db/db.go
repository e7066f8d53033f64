package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"kwforge/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevCorpus inserts reference keywords for development. Skips keywords
// that already exist.
func (d *DB) SeedDevCorpus(ctx context.Context) error {
	entries := []struct {
		keyword     string
		volume      int64
		cpc         float64
		difficulty  float64
		competition float64
	}{
		{"running shoes", 90500, 1.45, 72, 0.82},
		{"trail running shoes", 33100, 1.21, 58, 0.74},
		{"best running shoes", 60500, 1.89, 65, 0.88},
		{"marathon training plan", 14800, 0.95, 41, 0.35},
		{"athletic socks", 9900, 0.62, 38, 0.55},
		{"compression sleeves", 6600, 0.84, 33, 0.47},
	}

	query := `
		INSERT INTO corpus_keywords (keyword, search_volume, cpc, keyword_difficulty, competition)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (keyword) DO NOTHING
	`

	for _, e := range entries {
		if _, err := d.Pool.Exec(ctx, query, e.keyword, e.volume, e.cpc, e.difficulty, e.competition); err != nil {
			return fmt.Errorf("failed to seed keyword %s: %w", e.keyword, err)
		}
	}

	return nil
}
