package jobs

import (
	"context"
	"log"
	"time"

	"kwforge/internal/pipeline"
)

// CorpusRefresher periodically reloads the reference corpus and rebuilds
// the similarity index so newly ingested keywords become scoreable without
// a restart.
type CorpusRefresher struct {
	pipeline *pipeline.Pipeline
	interval time.Duration
}

// NewCorpusRefresher creates a new corpus refresher.
func NewCorpusRefresher(p *pipeline.Pipeline, interval time.Duration) *CorpusRefresher {
	return &CorpusRefresher{pipeline: p, interval: interval}
}

// Start begins the background refresh loop.
func (r *CorpusRefresher) Start(ctx context.Context) {
	log.Printf("Corpus refresher started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Corpus refresher stopped")
			return
		case <-ticker.C:
			if err := r.pipeline.RefreshIndex(ctx); err != nil {
				log.Printf("Corpus refresher: rebuild failed: %v", err)
			}
		}
	}
}
