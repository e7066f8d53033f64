package models

import (
	"time"

	"github.com/google/uuid"
)

// KeywordVariant is a persisted, fully scored keyword produced by a
// generation request.
type KeywordVariant struct {
	ID                uuid.UUID `json:"id"`
	RequestID         uuid.UUID `json:"request_id"`
	Keyword           string    `json:"keyword"`
	Source            string    `json:"source"`
	SearchVolume      int64     `json:"search_volume"`
	CPC               float64   `json:"cpc"`
	KeywordDifficulty float64   `json:"keyword_difficulty"`
	Competition       float64   `json:"competition"`
	EfficiencyIndex   float64   `json:"efficiency_index"`
	Confidence        float64   `json:"confidence"`
	Bucket            string    `json:"bucket"`
	ImageURL          *string   `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// KeywordCount is a distinct keyword with the number of variants stored
// for it.
type KeywordCount struct {
	Keyword      string `json:"keyword"`
	VariantCount int64  `json:"variant_count"`
}

// FromScored builds a variant row from a scored keyword.
func FromScored(requestID uuid.UUID, s ScoredKeyword, bucket string, imageURL *string) KeywordVariant {
	return KeywordVariant{
		ID:                uuid.New(),
		RequestID:         requestID,
		Keyword:           s.Text,
		Source:            s.Source,
		SearchVolume:      s.Estimated.SearchVolume,
		CPC:               s.Estimated.CPC,
		KeywordDifficulty: s.Estimated.KeywordDifficulty,
		Competition:       s.Estimated.Competition,
		EfficiencyIndex:   s.EfficiencyIndex,
		Confidence:        s.Estimated.Confidence,
		Bucket:            bucket,
		ImageURL:          imageURL,
	}
}
