package ranking

import (
	"context"
	"reflect"
	"testing"

	"kwforge/internal/models"
)

func candidates(texts ...string) []models.Candidate {
	out := make([]models.Candidate, len(texts))
	for i, t := range texts {
		out[i] = models.Candidate{Text: t, Source: models.SourceGenerated}
	}
	return out
}

func TestEnrichAll_PreservesOrder(t *testing.T) {
	idx, err := BuildIndex(testCorpus())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	est := &Estimator{}

	cands := candidates(
		"running shoes",
		"best trail running shoes",
		"zzzqqq",
		"marathon training plan",
		"athletic socks for runners",
	)

	got, err := EnrichAll(context.Background(), idx, est, cands, DefaultTopN, DefaultSimilarityThreshold)
	if err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}
	if len(got) != len(cands) {
		t.Fatalf("got %d results, want %d", len(got), len(cands))
	}
	for i, e := range got {
		if e.Candidate.Text != cands[i].Text {
			t.Errorf("result[%d] = %q, want %q", i, e.Candidate.Text, cands[i].Text)
		}
	}
}

func TestEnrichAll_MatchesSequential(t *testing.T) {
	idx, err := BuildIndex(testCorpus())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	est := &Estimator{}
	cands := candidates("running shoes", "trail shoes", "gym socks", "zzz")

	concurrent, err := EnrichAll(context.Background(), idx, est, cands, DefaultTopN, DefaultSimilarityThreshold)
	if err != nil {
		t.Fatalf("EnrichAll: %v", err)
	}

	for i, c := range cands {
		matches := idx.Similar(c.Text, DefaultTopN)
		want := Enriched{
			Candidate: c,
			Estimate:  est.Estimate(c.Text, matches),
			Matches:   matches,
		}
		if !reflect.DeepEqual(concurrent[i], want) {
			t.Errorf("result[%d] differs from sequential pipeline:\n got %+v\nwant %+v", i, concurrent[i], want)
		}
	}
}

func TestEnrichAll_Cancelled(t *testing.T) {
	idx, err := BuildIndex(testCorpus())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = EnrichAll(ctx, idx, &Estimator{}, candidates("a", "b", "c"), DefaultTopN, DefaultSimilarityThreshold)
	if err == nil {
		t.Fatal("expected context error from cancelled EnrichAll")
	}
}

func TestEnrichAll_Empty(t *testing.T) {
	idx, err := BuildIndex(testCorpus())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	got, err := EnrichAll(context.Background(), idx, &Estimator{}, nil, DefaultTopN, DefaultSimilarityThreshold)
	if err != nil || got != nil {
		t.Errorf("EnrichAll(empty) = %v, %v; want nil, nil", got, err)
	}
}

// The full scorer -> estimator -> composite chain must be bit-identical
// across runs against the same immutable index.
func TestPipeline_Idempotent(t *testing.T) {
	idx, err := BuildIndex(testCorpus())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	est := &Estimator{BrandTokens: []string{"nike"}}
	cands := candidates(
		"nike running shoes",
		"how to pick trail shoes",
		"marathon training plan",
		"compression socks",
	)

	run := func() []models.ScoredKeyword {
		enriched, err := EnrichAll(context.Background(), idx, est, cands, DefaultTopN, DefaultSimilarityThreshold)
		if err != nil {
			t.Fatalf("EnrichAll: %v", err)
		}
		return ScoreBatch(enriched, DefaultWeights())
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("pipeline output differs between runs:\n%+v\n%+v", first, second)
	}
}
