package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"uuidy/internal/db"
	"uuidy/internal/models"
	"uuidy/internal/testutil"
)

func TestPrunerRemovesExpiredRows(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	testutil.CreateTestClassification(t, database, "11111111-1111-1111-1111-111111111111", "Stale", models.TypeVendorSpecific, time.Now().Add(-time.Hour))
	testutil.CreateTestClassification(t, database, "22222222-2222-2222-2222-222222222222", "Live", models.TypeVendorSpecific, time.Now().Add(time.Hour))

	p := NewPruner(database, time.Hour)
	p.prune(ctx)

	if _, err := database.GetClassification(ctx, "11111111-1111-1111-1111-111111111111"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expired row still present, err = %v", err)
	}
	if _, err := database.GetClassification(ctx, "22222222-2222-2222-2222-222222222222"); err != nil {
		t.Errorf("live row removed: %v", err)
	}
}

func TestPrunerStopsOnContextCancel(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p := NewPruner(database, time.Hour)
	go func() {
		p.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pruner did not stop after context cancellation")
	}
}
