package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"uuidy/internal/db"
)

var (
	lookupDesc = prometheus.NewDesc(
		"uuidy_lookups_total",
		"Total classification lookup count by outcome",
		[]string{"outcome"},
		nil,
	)
)

// LookupCollector is a custom Prometheus collector that reads classification
// lookup counts from the database on each scrape.
type LookupCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *LookupCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- lookupDesc
}

// Collect queries the database for all lookup stats and emits them as counters.
func (c *LookupCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.GetAllLookupStats(context.Background())
	if err != nil {
		slog.Error("failed to collect lookup metrics", "error", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(
			lookupDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Outcome,
		)
	}
}

// Recorder provides async lookup outcome recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&LookupCollector{db: database})
	})
}

// RecordLookup asynchronously records a classification lookup outcome.
func RecordLookup(outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementLookup(context.Background(), outcome); err != nil {
			slog.Error("failed to record lookup", "outcome", outcome, "error", err)
		}
	}()
}
