package db

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"uuidy/internal/models"
	"uuidy/migrations"
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

// Ping verifies the database connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevRecords inserts classifications for a few well-known BLE services
// so development environments start with a warm cache. Existing entries are
// left untouched.
func (d *DB) SeedDevRecords(ctx context.Context) error {
	records := []struct {
		uuid        string
		name        string
		description string
	}{
		{"0000180d-0000-1000-8000-00805f9b34fb", "Heart Rate", "Heart Rate service for heart rate monitoring"},
		{"0000180f-0000-1000-8000-00805f9b34fb", "Battery Service", "Battery Service for battery level reporting"},
		{"0000180a-0000-1000-8000-00805f9b34fb", "Device Information", "Device Information service for manufacturer and model data"},
	}

	query := `
		INSERT INTO classifications (uuid, name, type, description, sources, confidence, searched_at, expires_at)
		VALUES ($1, $2, $3, $4, '[]', $5, NOW(), NOW() + INTERVAL '30 days')
		ON CONFLICT (uuid) DO NOTHING
	`

	for _, r := range records {
		_, err := d.Pool.Exec(ctx, query, r.uuid, r.name, models.TypeStandardBLE, r.description, models.ConfidenceHigh)
		if err != nil {
			return fmt.Errorf("failed to seed record %s: %w", r.uuid, err)
		}
	}

	return nil
}

// Cache adapts the DB to the classify pipeline's cache interface with a
// fixed TTL applied at write time.
type Cache struct {
	db  *DB
	ttl time.Duration
}

// NewCache creates a cache view over the database.
func NewCache(database *DB, ttl time.Duration) *Cache {
	return &Cache{db: database, ttl: ttl}
}

// Get fetches the cached classification for a normalized UUID.
func (c *Cache) Get(ctx context.Context, id string) (*models.Classification, error) {
	return c.db.GetClassification(ctx, id)
}

// Put stores a classification with expiry searched_at + TTL.
func (c *Cache) Put(ctx context.Context, rec *models.Classification) error {
	return c.db.PutClassification(ctx, rec, c.ttl)
}
