package db

import (
	"context"

	"uuidy/internal/models"
)

// IncrementLookup upserts a classification lookup count by outcome.
func (d *DB) IncrementLookup(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO lookup_stats (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = lookup_stats.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetAllLookupStats returns all lookup stat rows for metrics export.
func (d *DB) GetAllLookupStats(ctx context.Context) ([]models.LookupStat, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count, last_seen_at FROM lookup_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.LookupStat
	for rows.Next() {
		var s models.LookupStat
		if err := rows.Scan(&s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
