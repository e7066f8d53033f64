package ranking

import (
	"context"
	"runtime"
	"sync"

	"kwforge/internal/models"
)

// EnrichAll runs the scorer and estimator for each candidate on a bounded
// worker pool. Candidates are independent and the index is immutable, so
// the only shared state is the result slice, written at disjoint indices.
// Output order matches input order regardless of scheduling. The context
// cancels remaining work between candidates; already-computed results for
// earlier candidates are discarded along with the error.
func EnrichAll(ctx context.Context, idx *Index, est *Estimator, candidates []models.Candidate, topN int, threshold float64) ([]Enriched, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(candidates) {
		workers = len(candidates)
	}

	results := make([]Enriched, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := candidates[i]
				matches := idx.SimilarThreshold(c.Text, topN, threshold)
				results[i] = Enriched{
					Candidate: c,
					Estimate:  est.Estimate(c.Text, matches),
					Matches:   matches,
				}
			}
		}()
	}

	var err error
	for i := range candidates {
		if err = ctx.Err(); err != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
