package models

import "time"

// Lookup outcome constants
const (
	OutcomeCacheHit  = "cache_hit"
	OutcomeCacheMiss = "cache_miss"
	OutcomeInvalid   = "invalid"
)

// LookupStat represents a classification lookup count by outcome.
type LookupStat struct {
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
