package db_test

import (
	"context"
	"testing"

	"uuidy/internal/models"
	"uuidy/internal/testutil"
)

func TestIncrementLookup(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := database.IncrementLookup(ctx, models.OutcomeCacheHit); err != nil {
			t.Fatalf("IncrementLookup: %v", err)
		}
	}
	if err := database.IncrementLookup(ctx, models.OutcomeInvalid); err != nil {
		t.Fatalf("IncrementLookup: %v", err)
	}

	stats, err := database.GetAllLookupStats(ctx)
	if err != nil {
		t.Fatalf("GetAllLookupStats: %v", err)
	}

	counts := make(map[string]int64)
	for _, s := range stats {
		counts[s.Outcome] = s.Count
		if s.LastSeenAt.IsZero() {
			t.Errorf("LastSeenAt zero for %s", s.Outcome)
		}
	}

	if counts[models.OutcomeCacheHit] != 3 {
		t.Errorf("cache_hit count = %d, want 3", counts[models.OutcomeCacheHit])
	}
	if counts[models.OutcomeInvalid] != 1 {
		t.Errorf("invalid count = %d, want 1", counts[models.OutcomeInvalid])
	}
}

func TestGetAllLookupStatsEmpty(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	stats, err := database.GetAllLookupStats(context.Background())
	if err != nil {
		t.Fatalf("GetAllLookupStats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats = %v, want none", stats)
	}
}
