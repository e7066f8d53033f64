package ranking

import "kwforge/internal/models"

// Weights controls the composite efficiency index. Volume dominates because
// it bounds achievable traffic; difficulty and competition gate ranking
// feasibility equally; CPC is a minor signal since its desirability depends
// on campaign goals.
type Weights struct {
	Volume      float64 `yaml:"volume"`
	Difficulty  float64 `yaml:"difficulty"`
	Competition float64 `yaml:"competition"`
	CPC         float64 `yaml:"cpc"`
}

// DefaultWeights returns the standard efficiency weighting.
func DefaultWeights() Weights {
	return Weights{Volume: 0.4, Difficulty: 0.25, Competition: 0.25, CPC: 0.1}
}

// Enriched pairs a candidate with its estimate and the matches that
// produced it, ready for composite scoring.
type Enriched struct {
	Candidate models.Candidate
	Estimate  models.EstimatedMetrics
	Matches   []models.SimilarityMatch
}

// ScoreBatch folds each estimate into a single efficiency index in [0,1],
// order-preserving. Search volume and CPC are normalized against the batch
// maximum; a zero maximum contributes zero signal. The weighted sum is then
// scaled by a confidence factor so low-confidence estimates rank lower.
func ScoreBatch(items []Enriched, w Weights) []models.ScoredKeyword {
	if len(items) == 0 {
		return nil
	}

	var maxVolume, maxCPC float64
	for _, it := range items {
		maxVolume = max(maxVolume, float64(it.Estimate.SearchVolume))
		maxCPC = max(maxCPC, it.Estimate.CPC)
	}
	if maxVolume == 0 {
		maxVolume = 1
	}
	if maxCPC == 0 {
		maxCPC = 1
	}

	scored := make([]models.ScoredKeyword, len(items))
	for i, it := range items {
		est := it.Estimate
		volumeScore := min(1.0, float64(est.SearchVolume)/maxVolume)
		cpcScore := min(1.0, est.CPC/maxCPC)
		difficultyInverse := 1 - est.KeywordDifficulty/100
		competitionInverse := 1 - est.Competition

		index := w.Volume*volumeScore +
			w.Difficulty*difficultyInverse +
			w.Competition*competitionInverse +
			w.CPC*cpcScore

		confidenceFactor := 0.5 + 0.5*est.Confidence
		index = clamp(index*confidenceFactor, 0, 1)

		scored[i] = models.ScoredKeyword{
			Candidate:       it.Candidate,
			Estimated:       est,
			EfficiencyIndex: index,
			SimilarKeywords: it.Matches,
		}
	}
	return scored
}
