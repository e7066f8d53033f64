package models

// Candidate source values.
const (
	SourceRetrieved = "retrieved"
	SourceGenerated = "generated"
)

// Structural buckets used by the diversity ranker.
const (
	BucketShortTail     = "short_tail"
	BucketMediumTail    = "medium_tail"
	BucketLongTail      = "long_tail"
	BucketQuestionBased = "question_based"
)

// CorpusEntry is one reference keyword with its measured marketing metrics.
// The corpus is loaded in bulk at index build time and never mutated.
type CorpusEntry struct {
	Keyword           string  `json:"keyword"`
	SearchVolume      int64   `json:"search_volume"`
	CPC               float64 `json:"cpc"`
	KeywordDifficulty float64 `json:"keyword_difficulty"` // 0-100
	Competition       float64 `json:"competition"`        // 0-1
}

// Metrics is the four-field metric tuple shared by corpus entries and
// estimates.
type Metrics struct {
	SearchVolume      int64   `json:"search_volume"`
	CPC               float64 `json:"cpc"`
	KeywordDifficulty float64 `json:"keyword_difficulty"`
	Competition       float64 `json:"competition"`
}

// MetricsOf extracts the metric tuple from a corpus entry.
func MetricsOf(e CorpusEntry) Metrics {
	return Metrics{
		SearchVolume:      e.SearchVolume,
		CPC:               e.CPC,
		KeywordDifficulty: e.KeywordDifficulty,
		Competition:       e.Competition,
	}
}

// Candidate is a keyword string under evaluation, not yet in the corpus.
// Source is a provenance tag and does not affect scoring.
type Candidate struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// SimilarityMatch pairs a corpus keyword with its similarity to a candidate.
type SimilarityMatch struct {
	CorpusKeyword string  `json:"corpus_keyword"`
	Similarity    float64 `json:"similarity"` // (0.3, 1.0] for returned matches
	Metrics       Metrics `json:"metrics"`
}

// EstimatedMetrics is a derived metric tuple for a novel keyword, with a
// confidence score reflecting the quantity and strength of supporting
// matches.
type EstimatedMetrics struct {
	Metrics
	Confidence float64 `json:"confidence"` // 0-1
}

// ScoredKeyword is a candidate with its estimate folded into a single
// efficiency index in [0,1].
type ScoredKeyword struct {
	Candidate
	Estimated       EstimatedMetrics  `json:"estimated"`
	EfficiencyIndex float64           `json:"efficiency_index"`
	SimilarKeywords []SimilarityMatch `json:"similar_keywords,omitempty"`
}
