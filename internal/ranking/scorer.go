package ranking

import (
	"sort"
	"strings"

	"kwforge/internal/models"
)

const (
	// DefaultTopN is the number of similar corpus entries returned per
	// candidate when the caller does not ask for a specific count.
	DefaultTopN = 5

	// DefaultSimilarityThreshold is the combined-score floor below which a
	// corpus entry is not considered a match.
	DefaultSimilarityThreshold = 0.3

	// Blend weights: character grams catch typos and surface variation,
	// word grams carry more of the meaning.
	charSimilarityWeight = 0.4
	wordSimilarityWeight = 0.6
)

// Similar returns the topN most similar corpus entries for keyword, most
// similar first. An exact case-insensitive corpus hit short-circuits with a
// single similarity-1.0 match; vector similarity is not computed. Entries
// with a combined score at or below threshold are discarded. Ties are
// broken by corpus insertion order.
//
// An empty result is a normal no-match outcome, not an error.
func (idx *Index) Similar(keyword string, topN int) []models.SimilarityMatch {
	return idx.SimilarThreshold(keyword, topN, DefaultSimilarityThreshold)
}

// SimilarThreshold is Similar with an explicit score floor.
func (idx *Index) SimilarThreshold(keyword string, topN int, threshold float64) []models.SimilarityMatch {
	if topN <= 0 {
		topN = DefaultTopN
	}
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	if normalized == "" {
		return nil
	}

	if i, ok := idx.exact[normalized]; ok {
		e := idx.entries[i]
		return []models.SimilarityMatch{{
			CorpusKeyword: e.Keyword,
			Similarity:    1.0,
			Metrics:       models.MetricsOf(e),
		}}
	}

	charVec := idx.char.project(normalized)
	wordVec := idx.word.project(normalized)
	if charVec == nil && wordVec == nil {
		// No recognized n-grams in either space.
		return nil
	}

	type scored struct {
		entry int
		sim   float64
	}
	candidates := make([]scored, 0, len(idx.entries))
	for i := range idx.entries {
		combined := charSimilarityWeight*cosine(charVec, idx.char.vectors[i]) +
			wordSimilarityWeight*cosine(wordVec, idx.word.vectors[i])
		if combined > threshold {
			candidates = append(candidates, scored{entry: i, sim: combined})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].sim != candidates[b].sim {
			return candidates[a].sim > candidates[b].sim
		}
		return candidates[a].entry < candidates[b].entry
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	matches := make([]models.SimilarityMatch, len(candidates))
	for i, c := range candidates {
		e := idx.entries[c.entry]
		matches[i] = models.SimilarityMatch{
			CorpusKeyword: e.Keyword,
			Similarity:    c.sim,
			Metrics:       models.MetricsOf(e),
		}
	}
	return matches
}
