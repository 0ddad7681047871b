// Package classify coordinates the classification pipeline: normalize, cache
// lookup, pattern match, web search, heuristic classification, cache write.
// Only input validation errors escape; every other fault degrades the quality
// of the returned record instead of failing the request.
package classify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"uuidy/internal/ble"
	"uuidy/internal/classifier"
	"uuidy/internal/config"
	"uuidy/internal/db"
	"uuidy/internal/models"
	"uuidy/internal/validation"
)

// Cache is the persistence capability the pipeline needs. Get returns
// db.ErrNotFound for missing or expired entries; any other error is treated
// as a storage fault and degraded to a miss.
type Cache interface {
	Get(ctx context.Context, id string) (*models.Classification, error)
	Put(ctx context.Context, rec *models.Classification) error
}

// Searcher issues a web search for a UUID. Implementations fail open: they
// return an empty result list rather than an error.
type Searcher interface {
	Search(ctx context.Context, id string) []models.Source
}

// Service runs the classification pipeline.
type Service struct {
	cache        Cache
	search       Searcher
	engine       *classifier.Engine
	cacheTimeout time.Duration
	now          func() time.Time
}

// NewService creates the pipeline service with its collaborators injected.
func NewService(cache Cache, searcher Searcher, cfg *config.Config) *Service {
	return &Service{
		cache:        cache,
		search:       searcher,
		engine:       classifier.New(),
		cacheTimeout: cfg.CacheTimeout,
		now:          time.Now,
	}
}

// Classify normalizes raw and returns its classification record, served from
// cache when a fresh entry exists. The only error returned is
// validation.ErrInvalidUUID; cache and search faults degrade locally.
func (s *Service) Classify(ctx context.Context, raw string) (*models.Classification, error) {
	id, err := validation.NormalizeUUID(raw)
	if err != nil {
		return nil, err
	}

	if rec := s.cachedRecord(ctx, id); rec != nil {
		rec.Cached = true
		return rec, nil
	}

	// Pattern matching is cheap and always runs. The search round trip is
	// skipped when the structure alone already settles the classification.
	match := ble.Classify(id)
	var results []models.Source
	if match == nil || match.Confidence != models.ConfidenceHigh {
		results = s.search.Search(ctx, id)
	}

	rec := s.engine.Classify(id, match, results)
	rec.SearchedAt = s.now().UTC()
	rec.Cached = false

	s.storeRecord(ctx, &rec)
	return &rec, nil
}

// cachedRecord looks up a fresh cache entry, treating storage faults and
// timeouts as misses.
func (s *Service) cachedRecord(ctx context.Context, id string) *models.Classification {
	cctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	rec, err := s.cache.Get(cctx, id)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			slog.Warn("cache read failed, treating as miss", "uuid", id, "error", err)
		}
		return nil
	}
	return rec
}

// storeRecord writes through to the cache best-effort. A failed write is
// logged and dropped; the request still succeeds with the fresh record.
func (s *Service) storeRecord(ctx context.Context, rec *models.Classification) {
	pctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()

	if err := s.cache.Put(pctx, rec); err != nil {
		slog.Warn("cache write failed, serving uncached record", "uuid", rec.UUID, "error", err)
	}
}
