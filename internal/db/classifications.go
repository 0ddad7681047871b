package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"uuidy/internal/models"
)

// GetClassification fetches the cached classification for a normalized UUID.
// Entries whose expiry has passed read as absent; they are left in place for
// the background pruner.
func (d *DB) GetClassification(ctx context.Context, id string) (*models.Classification, error) {
	row := d.Pool.QueryRow(ctx, `
		SELECT uuid, name, type, description, sources, confidence, searched_at
		FROM classifications
		WHERE uuid = $1 AND expires_at > NOW()
	`, id)

	var rec models.Classification
	var sources []byte
	err := row.Scan(
		&rec.UUID,
		&rec.Name,
		&rec.Type,
		&rec.Description,
		&sources,
		&rec.Confidence,
		&rec.SearchedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sources, &rec.Sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources for %s: %w", id, err)
	}

	return &rec, nil
}

// PutClassification upserts a classification record. An existing entry is
// overwritten unconditionally and its expiry clock reset to
// searched_at + ttl.
func (d *DB) PutClassification(ctx context.Context, rec *models.Classification, ttl time.Duration) error {
	srcs := rec.Sources
	if srcs == nil {
		srcs = []models.Source{}
	}
	sources, err := json.Marshal(srcs)
	if err != nil {
		return fmt.Errorf("failed to encode sources for %s: %w", rec.UUID, err)
	}

	_, err = d.Pool.Exec(ctx, `
		INSERT INTO classifications (uuid, name, type, description, sources, confidence, searched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uuid) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			sources = EXCLUDED.sources,
			confidence = EXCLUDED.confidence,
			searched_at = EXCLUDED.searched_at,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`,
		rec.UUID,
		rec.Name,
		rec.Type,
		rec.Description,
		sources,
		rec.Confidence,
		rec.SearchedAt,
		rec.SearchedAt.Add(ttl),
	)
	return err
}

// DeleteExpiredClassifications removes up to limit expired rows and returns
// the number deleted.
func (d *DB) DeleteExpiredClassifications(ctx context.Context, limit int) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `
		DELETE FROM classifications
		WHERE uuid IN (
			SELECT uuid FROM classifications WHERE expires_at <= NOW() LIMIT $1
		)
	`, limit)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
