package ranking

import (
	"fmt"
	"testing"

	"kwforge/internal/models"
)

func scoredKeyword(text string, efficiency float64) models.ScoredKeyword {
	return models.ScoredKeyword{
		Candidate:       models.Candidate{Text: text, Source: models.SourceGenerated},
		EfficiencyIndex: efficiency,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"shoes", models.BucketShortTail},
		{"running shoes", models.BucketShortTail},
		{"best running shoes", models.BucketMediumTail},
		{"best trail running shoes", models.BucketMediumTail},
		{"best running shoes for flat feet", models.BucketLongTail},
		{"how to choose running shoes", models.BucketQuestionBased},
		{"what shoes", models.BucketQuestionBased},
		{"which marathon shoes last longest", models.BucketQuestionBased},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			if got := Classify(tt.keyword); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestRank_EmptyInput(t *testing.T) {
	r := Ranker{Quotas: DefaultQuotas()}
	if got := r.Rank(nil, 12); len(got) != 0 {
		t.Errorf("Rank(nil) = %d items, want 0", len(got))
	}
}

func TestRank_FewerThanNeededReturnsAllSorted(t *testing.T) {
	r := Ranker{Quotas: DefaultQuotas()}
	scored := []models.ScoredKeyword{
		scoredKeyword("shoes", 0.2),
		scoredKeyword("running shoes sale", 0.8),
		scoredKeyword("trail gear", 0.5),
	}
	got := r.Rank(scored, 12)
	if len(got) != 3 {
		t.Fatalf("got %d items, want all 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].EfficiencyIndex > got[i-1].EfficiencyIndex {
			t.Errorf("output not sorted by efficiency at %d", i)
		}
	}
}

// mixedBatch builds 20 keywords: 3 question-based, 10 medium-tail,
// 5 short-tail, 2 long-tail, with distinct descending scores per bucket.
func mixedBatch() []models.ScoredKeyword {
	var batch []models.ScoredKeyword
	for i := range 3 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("why buy shoes v%d", i), 0.90-float64(i)*0.01))
	}
	for i := range 10 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("best running shoes v%d", i), 0.80-float64(i)*0.01))
	}
	for i := range 5 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("shoes v%d", i), 0.60-float64(i)*0.01))
	}
	for i := range 2 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("best running shoes for flat feet v%d", i), 0.50-float64(i)*0.01))
	}
	return batch
}

func TestRank_QuotaSelection(t *testing.T) {
	r := Ranker{Quotas: Quotas{ShortTail: 2, MediumTail: 5, LongTail: 2, QuestionBased: 3}}
	got := r.Rank(mixedBatch(), 12)

	if len(got) != 12 {
		t.Fatalf("got %d items, want 12", len(got))
	}

	counts := map[string]int{}
	for _, s := range got {
		counts[Classify(s.Text)]++
	}

	// Question and long-tail quotas equal their bucket sizes, so both
	// buckets appear in full; short and medium contribute their quota
	// heads.
	want := map[string]int{
		models.BucketQuestionBased: 3,
		models.BucketLongTail:      2,
		models.BucketMediumTail:    5,
		models.BucketShortTail:     2,
	}
	for bucket, n := range want {
		if counts[bucket] != n {
			t.Errorf("bucket %s: got %d, want %d", bucket, counts[bucket], n)
		}
	}
}

func TestRank_DiversityGuarantee(t *testing.T) {
	r := Ranker{Quotas: DefaultQuotas()}
	got := r.Rank(mixedBatch(), 12)

	seen := map[string]bool{}
	for _, s := range got {
		seen[Classify(s.Text)] = true
	}
	for _, bucket := range []string{
		models.BucketShortTail,
		models.BucketMediumTail,
		models.BucketLongTail,
		models.BucketQuestionBased,
	} {
		if !seen[bucket] {
			t.Errorf("bucket %s missing from ranked output", bucket)
		}
	}
}

func TestRank_QuotaHeadsAreTopScored(t *testing.T) {
	r := Ranker{Quotas: Quotas{ShortTail: 2, MediumTail: 5, LongTail: 2, QuestionBased: 3}}
	got := r.Rank(mixedBatch(), 12)

	// Medium-tail quota must take the five highest-scoring medium
	// keywords (v0..v4).
	mediums := map[string]bool{}
	for _, s := range got {
		if Classify(s.Text) == models.BucketMediumTail {
			mediums[s.Text] = true
		}
	}
	for i := range 5 {
		name := fmt.Sprintf("best running shoes v%d", i)
		if !mediums[name] {
			t.Errorf("expected top medium keyword %q in output", name)
		}
	}
}

func TestRank_BackfillFromLeftovers(t *testing.T) {
	// Question bucket is empty, so its quota underflows and the gap is
	// backfilled by score from the other buckets' leftovers.
	var batch []models.ScoredKeyword
	for i := range 10 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("best running shoes v%d", i), 0.80-float64(i)*0.01))
	}
	for i := range 5 {
		batch = append(batch, scoredKeyword(fmt.Sprintf("shoes v%d", i), 0.60-float64(i)*0.01))
	}

	r := Ranker{Quotas: DefaultQuotas()}
	got := r.Rank(batch, 12)

	if len(got) != 12 {
		t.Fatalf("got %d items, want 12 after backfill", len(got))
	}
	counts := map[string]int{}
	for _, s := range got {
		counts[Classify(s.Text)]++
	}
	// Quotas give 3 short + 5 medium; backfill adds the 4 highest-scoring
	// leftovers, which are all medium (0.75..0.71 beat short 0.57..).
	if counts[models.BucketMediumTail] != 9 {
		t.Errorf("medium-tail count = %d, want 9", counts[models.BucketMediumTail])
	}
	if counts[models.BucketShortTail] != 3 {
		t.Errorf("short-tail count = %d, want 3", counts[models.BucketShortTail])
	}
}

func TestRank_OutputSortedByEfficiency(t *testing.T) {
	r := Ranker{Quotas: DefaultQuotas()}
	got := r.Rank(mixedBatch(), 12)
	for i := 1; i < len(got); i++ {
		if got[i].EfficiencyIndex > got[i-1].EfficiencyIndex {
			t.Errorf("output not sorted at %d: %v after %v", i, got[i].EfficiencyIndex, got[i-1].EfficiencyIndex)
		}
	}
}
