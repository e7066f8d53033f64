package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"kwforge/internal/db"
)

var (
	keywordLookupDesc = prometheus.NewDesc(
		"kwforge_keyword_lookups_total",
		"Total scorer lookup count by outcome",
		[]string{"keyword", "outcome"},
		nil,
	)
	variantsBySourceDesc = prometheus.NewDesc(
		"kwforge_variants_total",
		"Total stored keyword variants by candidate source",
		[]string{"source"},
		nil,
	)
	corpusSizeDesc = prometheus.NewDesc(
		"kwforge_corpus_keywords",
		"Number of reference keywords in the corpus",
		nil,
		nil,
	)
)

var (
	// GenerationRequests counts variant generation requests by result.
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kwforge_generation_requests_total",
		Help: "Total variant generation requests by result",
	}, []string{"result"})

	// GenerationDuration observes end-to-end generation latency.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kwforge_generation_duration_seconds",
		Help:    "End-to-end variant generation latency",
		Buckets: prometheus.DefBuckets,
	})

	// CacheHits counts score cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kwforge_score_cache_lookups_total",
		Help: "Score cache lookups by outcome",
	}, []string{"outcome"})
)

// PipelineCollector is a custom Prometheus collector that reads lookup,
// variant, and corpus counts from the database on each scrape.
type PipelineCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *PipelineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordLookupDesc
	ch <- variantsBySourceDesc
	ch <- corpusSizeDesc
}

// Collect queries the database and emits current counts.
func (c *PipelineCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	lookups, err := c.db.GetAllKeywordLookups(ctx)
	if err != nil {
		slog.Error("failed to collect keyword lookup metrics", "error", err)
	} else {
		for _, l := range lookups {
			ch <- prometheus.MustNewConstMetric(
				keywordLookupDesc,
				prometheus.CounterValue,
				float64(l.Count),
				l.Keyword,
				l.Outcome,
			)
		}
	}

	bySource, err := c.db.CountVariantsBySource(ctx)
	if err != nil {
		slog.Error("failed to collect variant counts", "error", err)
	} else {
		for source, count := range bySource {
			ch <- prometheus.MustNewConstMetric(
				variantsBySourceDesc,
				prometheus.CounterValue,
				float64(count),
				source,
			)
		}
	}

	corpusSize, err := c.db.CountCorpusKeywords(ctx)
	if err != nil {
		slog.Error("failed to collect corpus size", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(corpusSizeDesc, prometheus.GaugeValue, float64(corpusSize))
}

// Recorder provides async keyword lookup recording.
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
		prometheus.MustRegister(&PipelineCollector{db: database})
	})
}

// RecordKeywordLookup asynchronously records a scorer outcome for a keyword.
func RecordKeywordLookup(keyword, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementKeywordLookup(context.Background(), keyword, outcome); err != nil {
			slog.Error("failed to record keyword lookup", "keyword", keyword, "outcome", outcome, "error", err)
		}
	}()
}
