package models

import "time"

// Scorer outcome constants recorded per lookup.
const (
	OutcomeExact   = "exact"
	OutcomeSimilar = "similar"
	OutcomeNoMatch = "no_match"
)

// KeywordLookup represents a per-keyword scorer hit count by outcome.
type KeywordLookup struct {
	Keyword    string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
