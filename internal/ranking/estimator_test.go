package ranking

import (
	"math"
	"testing"

	"kwforge/internal/models"
)

func match(keyword string, sim float64, volume int64, cpc, difficulty, competition float64) models.SimilarityMatch {
	return models.SimilarityMatch{
		CorpusKeyword: keyword,
		Similarity:    sim,
		Metrics: models.Metrics{
			SearchVolume:      volume,
			CPC:               cpc,
			KeywordDifficulty: difficulty,
			Competition:       competition,
		},
	}
}

func TestEstimate_NoMatchesReturnsDefaults(t *testing.T) {
	var e Estimator
	got := e.Estimate("obscure widget", nil)

	if got.SearchVolume != defaultSearchVolume {
		t.Errorf("SearchVolume = %d, want %d", got.SearchVolume, defaultSearchVolume)
	}
	if got.CPC != defaultCPC {
		t.Errorf("CPC = %v, want %v", got.CPC, defaultCPC)
	}
	if got.KeywordDifficulty != defaultDifficulty {
		t.Errorf("KeywordDifficulty = %v, want %v", got.KeywordDifficulty, defaultDifficulty)
	}
	if got.Competition != defaultCompetition {
		t.Errorf("Competition = %v, want %v", got.Competition, defaultCompetition)
	}
	if got.Confidence != defaultConfidence {
		t.Errorf("Confidence = %v, want %v", got.Confidence, defaultConfidence)
	}
}

func TestEstimate_ExactMatchPassthrough(t *testing.T) {
	var e Estimator
	got := e.Estimate("running shoes", []models.SimilarityMatch{
		match("running shoes", 1.0, 10000, 1.5, 40, 0.6),
	})

	if got.SearchVolume != 10000 || got.CPC != 1.5 || got.KeywordDifficulty != 40 || got.Competition != 0.6 {
		t.Errorf("metrics = %+v, want verbatim corpus metrics", got.Metrics)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestEstimate_LongTailAdjustment(t *testing.T) {
	// Single non-exact match: the weighted base equals the match's values,
	// then the long-tail multipliers apply (5 words, no interrogative, no
	// brand token).
	var e Estimator
	got := e.Estimate("best running shoes for marathon", []models.SimilarityMatch{
		match("running shoes", 0.62, 10000, 1.5, 40, 0.6),
	})

	if got.SearchVolume < 7000 || got.SearchVolume > 8000 {
		t.Errorf("SearchVolume = %d, want within [7000, 8000]", got.SearchVolume)
	}
	if got.Competition < 0.42 || got.Competition > 0.48 {
		t.Errorf("Competition = %v, want within [0.42, 0.48]", got.Competition)
	}
	if got.CPC != 1.5 {
		t.Errorf("CPC = %v, want unadjusted 1.5", got.CPC)
	}
}

func TestEstimate_BrandAdjustment(t *testing.T) {
	e := Estimator{BrandTokens: []string{"nike"}}
	got := e.Estimate("nike running shoes", []models.SimilarityMatch{
		match("running shoes", 0.62, 10000, 1.5, 40, 0.6),
	})

	// 3 words: no long-tail factor, brand factor only.
	if got.SearchVolume < 12000 || got.SearchVolume > 13000 {
		t.Errorf("SearchVolume = %d, want scaled up ~1.2-1.3x into [12000, 13000]", got.SearchVolume)
	}
	if got.Competition < 0.66 || got.Competition > 0.72 {
		t.Errorf("Competition = %v, want scaled up ~1.1-1.2x into [0.66, 0.72]", got.Competition)
	}
}

func TestEstimate_InterrogativeAdjustment(t *testing.T) {
	var e Estimator
	base := e.Estimate("trail shoes", []models.SimilarityMatch{
		match("running shoes", 0.5, 10000, 1.5, 40, 0.6),
	})
	question := e.Estimate("what shoes", []models.SimilarityMatch{
		match("running shoes", 0.5, 10000, 1.5, 40, 0.6),
	})

	if question.SearchVolume >= base.SearchVolume {
		t.Errorf("question volume %d not reduced from %d", question.SearchVolume, base.SearchVolume)
	}
	if question.CPC >= base.CPC {
		t.Errorf("question CPC %v not reduced from %v", question.CPC, base.CPC)
	}
}

func TestEstimate_WeightedMean(t *testing.T) {
	var e Estimator
	got := e.Estimate("gym shoes", []models.SimilarityMatch{
		match("running shoes", 0.8, 1000, 2.0, 40, 0.4),
		match("athletic socks", 0.4, 400, 0.5, 10, 0.1),
	})

	// volume = (1000*0.8 + 400*0.4) / 1.2 = 800
	if got.SearchVolume != 800 {
		t.Errorf("SearchVolume = %d, want 800", got.SearchVolume)
	}
	// cpc = (2.0*0.8 + 0.5*0.4) / 1.2 = 1.5
	if got.CPC != 1.5 {
		t.Errorf("CPC = %v, want 1.5", got.CPC)
	}
	// difficulty = (40*0.8 + 10*0.4) / 1.2 = 30
	if got.KeywordDifficulty != 30 {
		t.Errorf("KeywordDifficulty = %v, want 30", got.KeywordDifficulty)
	}
}

func TestEstimate_ConfidenceMonotonic(t *testing.T) {
	var e Estimator
	a := []models.SimilarityMatch{
		match("running shoes", 0.4, 1000, 1.0, 40, 0.4),
	}
	b := append(append([]models.SimilarityMatch{}, a...),
		match("trail running", 0.5, 800, 0.9, 35, 0.3))

	confA := e.Estimate("gym shoes", a).Confidence
	confB := e.Estimate("gym shoes", b).Confidence
	if confB < confA {
		t.Errorf("confidence decreased with an extra stronger match: %v -> %v", confA, confB)
	}
}

func TestEstimate_ConfidenceCeiling(t *testing.T) {
	var e Estimator
	got := e.Estimate("gym shoes", []models.SimilarityMatch{
		match("running shoes", 0.95, 1000, 1.0, 40, 0.4),
		match("trail running", 0.9, 800, 0.9, 35, 0.3),
	})
	if got.Confidence > confidenceCeiling {
		t.Errorf("Confidence = %v, want at most %v for non-exact matches", got.Confidence, confidenceCeiling)
	}
}

func TestEstimate_ClampsMalformedMetrics(t *testing.T) {
	// A malformed corpus row must be clamped, not propagated or raised.
	var e Estimator
	got := e.Estimate("gym shoes", []models.SimilarityMatch{
		match("bad row", 0.5, -5000, -2.0, 150, 1.4),
	})

	if got.SearchVolume != 0 {
		t.Errorf("SearchVolume = %d, want floored at 0", got.SearchVolume)
	}
	if got.CPC != 0 {
		t.Errorf("CPC = %v, want floored at 0", got.CPC)
	}
	if got.KeywordDifficulty != 100 {
		t.Errorf("KeywordDifficulty = %v, want capped at 100", got.KeywordDifficulty)
	}
	if got.Competition != 1 {
		t.Errorf("Competition = %v, want capped at 1", got.Competition)
	}
}

func TestEstimate_AdjustmentsCompose(t *testing.T) {
	e := Estimator{BrandTokens: []string{"nike"}}
	got := e.Estimate("where to buy nike marathon shoes", []models.SimilarityMatch{
		match("running shoes", 0.5, 10000, 2.0, 40, 0.6),
	})

	// 6 words with an interrogative and the brand token: all three
	// multipliers apply to volume, in the same order Estimate applies them.
	base := 10000.0
	base *= longTailVolumeFactor
	base *= questionVolumeFactor
	base *= brandVolumeFactor
	wantVolume := int64(math.Round(base))
	if got.SearchVolume != wantVolume {
		t.Errorf("SearchVolume = %d, want %d", got.SearchVolume, wantVolume)
	}
}
