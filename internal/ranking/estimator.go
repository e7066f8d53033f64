package ranking

import (
	"math"
	"strings"

	"kwforge/internal/models"
)

// interrogatives mark question-form keywords. Matched by substring against
// the lower-cased keyword, same as the classifier in the ranker.
var interrogatives = []string{"how", "what", "why", "when", "where", "which"}

// Fallback estimate when a keyword has no similar corpus entries. Absence
// of evidence must not propagate zeros downstream.
const (
	defaultSearchVolume = 100
	defaultCPC          = 1.0
	defaultDifficulty   = 50.0
	defaultCompetition  = 0.5
	defaultConfidence   = 0.25

	// Non-exact estimates never claim full confidence.
	confidenceCeiling = 0.9

	// Near-exact similarity above which corpus metrics are taken verbatim.
	exactSimilarity = 0.99
)

// Multiplicative adjustments applied after the weighted mean. Each is
// independent; a keyword can receive all three.
const (
	longTailVolumeFactor      = 0.75
	longTailCompetitionFactor = 0.75
	questionVolumeFactor      = 0.9
	questionCPCFactor         = 0.9
	brandVolumeFactor         = 1.25
	brandCompetitionFactor    = 1.15
)

// Estimator derives metric estimates for keywords not present in the
// corpus. BrandTokens lists the advertiser's brand terms (lower-cased);
// keywords containing one get the brand adjustment.
type Estimator struct {
	BrandTokens []string
}

// Estimate turns the scorer's matches into an estimated metric tuple for
// keyword. With no matches it returns the documented low-confidence
// defaults. A single near-exact match passes its metrics through with full
// confidence. Otherwise each field is the similarity-weighted mean across
// matches, followed by deterministic keyword-shape adjustments and range
// clamps.
func (e *Estimator) Estimate(keyword string, matches []models.SimilarityMatch) models.EstimatedMetrics {
	if len(matches) == 0 {
		return models.EstimatedMetrics{
			Metrics: models.Metrics{
				SearchVolume:      defaultSearchVolume,
				CPC:               defaultCPC,
				KeywordDifficulty: defaultDifficulty,
				Competition:       defaultCompetition,
			},
			Confidence: defaultConfidence,
		}
	}

	if len(matches) == 1 && matches[0].Similarity > exactSimilarity {
		return models.EstimatedMetrics{Metrics: matches[0].Metrics, Confidence: 1.0}
	}

	var volume, cpc, difficulty, competition, totalWeight float64
	for _, m := range matches {
		w := m.Similarity
		totalWeight += w
		volume += float64(m.Metrics.SearchVolume) * w
		cpc += m.Metrics.CPC * w
		difficulty += m.Metrics.KeywordDifficulty * w
		competition += m.Metrics.Competition * w
	}
	if totalWeight > 0 {
		volume /= totalWeight
		cpc /= totalWeight
		difficulty /= totalWeight
		competition /= totalWeight
	}

	// More matches with stronger similarity mean higher confidence.
	confidence := min(confidenceCeiling, totalWeight/float64(len(matches))*2)

	lower := strings.ToLower(keyword)
	if wordCount(keyword) > 3 {
		volume *= longTailVolumeFactor
		competition *= longTailCompetitionFactor
	}
	if containsAny(lower, interrogatives) {
		volume *= questionVolumeFactor
		cpc *= questionCPCFactor
	}
	if containsAny(lower, e.BrandTokens) {
		volume *= brandVolumeFactor
		competition *= brandCompetitionFactor
	}

	return models.EstimatedMetrics{
		Metrics: models.Metrics{
			SearchVolume:      int64(math.Round(max(0, volume))),
			CPC:               max(0, cpc),
			KeywordDifficulty: clamp(difficulty, 0, 100),
			Competition:       clamp(competition, 0, 1),
		},
		Confidence: clamp(confidence, 0, 1),
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
