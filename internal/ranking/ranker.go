package ranking

import (
	"sort"
	"strings"

	"kwforge/internal/models"
)

// DefaultTotalNeeded is the size of the ranked shortlist.
const DefaultTotalNeeded = 12

// Quotas sets the per-bucket head counts taken before backfilling. The
// exact split is campaign policy, not a contract; defaults sum to
// DefaultTotalNeeded.
type Quotas struct {
	ShortTail     int `yaml:"short_tail"`
	MediumTail    int `yaml:"medium_tail"`
	LongTail      int `yaml:"long_tail"`
	QuestionBased int `yaml:"question_based"`
}

// DefaultQuotas returns the standard 3/5/2/2 split.
func DefaultQuotas() Quotas {
	return Quotas{ShortTail: 3, MediumTail: 5, LongTail: 2, QuestionBased: 2}
}

// Ranker selects a bounded, structurally diverse top-K from a scored
// batch. A naive top-K by score alone tends to over-represent one bucket.
type Ranker struct {
	Quotas Quotas
}

// Classify assigns a keyword to its structural bucket. Question detection
// runs first and wins over length.
func Classify(text string) string {
	if containsAny(strings.ToLower(text), interrogatives) {
		return models.BucketQuestionBased
	}
	switch n := wordCount(text); {
	case n <= 2:
		return models.BucketShortTail
	case n <= 4:
		return models.BucketMediumTail
	default:
		return models.BucketLongTail
	}
}

// Rank partitions scored keywords into the four structural buckets, takes
// each bucket's quota from its score-sorted head, backfills from the
// combined leftovers until totalNeeded is reached, and returns the
// selection sorted by efficiency index descending. Fewer inputs than
// totalNeeded are all returned, sorted; empty input yields empty output.
func (r *Ranker) Rank(scored []models.ScoredKeyword, totalNeeded int) []models.ScoredKeyword {
	if totalNeeded <= 0 {
		totalNeeded = DefaultTotalNeeded
	}
	if len(scored) == 0 {
		return nil
	}

	if len(scored) <= totalNeeded {
		out := make([]models.ScoredKeyword, len(scored))
		copy(out, scored)
		sortByEfficiency(out)
		return out
	}

	buckets := map[string][]models.ScoredKeyword{}
	for _, s := range scored {
		b := Classify(s.Text)
		buckets[b] = append(buckets[b], s)
	}
	for _, b := range buckets {
		sortByEfficiency(b)
	}

	quota := map[string]int{
		models.BucketShortTail:     r.Quotas.ShortTail,
		models.BucketMediumTail:    r.Quotas.MediumTail,
		models.BucketLongTail:      r.Quotas.LongTail,
		models.BucketQuestionBased: r.Quotas.QuestionBased,
	}

	var selected, leftover []models.ScoredKeyword
	for _, name := range []string{
		models.BucketShortTail,
		models.BucketMediumTail,
		models.BucketLongTail,
		models.BucketQuestionBased,
	} {
		b := buckets[name]
		take := min(quota[name], len(b))
		selected = append(selected, b[:take]...)
		leftover = append(leftover, b[take:]...)
	}

	if len(selected) < totalNeeded {
		sortByEfficiency(leftover)
		need := totalNeeded - len(selected)
		if need > len(leftover) {
			need = len(leftover)
		}
		selected = append(selected, leftover[:need]...)
	}

	sortByEfficiency(selected)
	if len(selected) > totalNeeded {
		selected = selected[:totalNeeded]
	}
	return selected
}

// sortByEfficiency orders by efficiency index descending, stable so equal
// scores keep their batch order.
func sortByEfficiency(s []models.ScoredKeyword) {
	sort.SliceStable(s, func(a, b int) bool {
		return s[a].EfficiencyIndex > s[b].EfficiencyIndex
	})
}
