package jobs

import (
	"context"
	"log"
	"time"

	"uuidy/internal/db"
)

// Pruner deletes expired classification rows in the background. Expired
// entries already read as absent; pruning only reclaims table space.
type Pruner struct {
	db        *db.DB
	interval  time.Duration
	batchSize int
}

// NewPruner creates a new cache pruner.
func NewPruner(database *db.DB, interval time.Duration) *Pruner {
	return &Pruner{
		db:        database,
		interval:  interval,
		batchSize: 500,
	}
}

// Start begins the background prune loop.
func (p *Pruner) Start(ctx context.Context) {
	log.Printf("Cache pruner started (interval: %v, batch: %d)", p.interval, p.batchSize)

	// Run immediately on start
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache pruner stopped")
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

// prune deletes expired rows in batches until none remain.
func (p *Pruner) prune(ctx context.Context) {
	var total int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := p.db.DeleteExpiredClassifications(ctx, p.batchSize)
		if err != nil {
			log.Printf("Cache pruner: failed to delete expired rows: %v", err)
			return
		}
		total += n
		if n < int64(p.batchSize) {
			break
		}

		// Delay between batches to avoid hogging the pool
		time.Sleep(1 * time.Second)
	}

	if total > 0 {
		log.Printf("Cache pruner: removed %d expired classifications", total)
	}
}
