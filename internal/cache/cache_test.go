package cache

import (
	"testing"
	"time"

	"kwforge/internal/models"
	"kwforge/internal/ranking"
)

func result(text string) ranking.Enriched {
	return ranking.Enriched{
		Candidate: models.Candidate{Text: text, Source: models.SourceGenerated},
		Estimate:  models.EstimatedMetrics{Confidence: 0.5},
	}
}

func TestScores_GetPut(t *testing.T) {
	c := New(4, time.Minute)

	if _, ok := c.Get("running shoes"); ok {
		t.Error("unexpected hit on empty cache")
	}

	c.Put("running shoes", result("running shoes"))
	got, ok := c.Get("running shoes")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.Candidate.Text != "running shoes" {
		t.Errorf("got %q, want %q", got.Candidate.Text, "running shoes")
	}
}

func TestScores_KeyNormalization(t *testing.T) {
	c := New(4, time.Minute)
	c.Put("Running Shoes", result("running shoes"))

	if _, ok := c.Get("  RUNNING SHOES "); !ok {
		t.Error("case and whitespace variants should hit the same entry")
	}
}

func TestScores_CapacityEvicts(t *testing.T) {
	c := New(2, time.Minute)
	c.Put("a", result("a"))
	c.Put("b", result("b"))
	c.Put("c", result("c"))

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after eviction", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
}

func TestScores_Purge(t *testing.T) {
	c := New(4, time.Minute)
	c.Put("a", result("a"))
	c.Put("b", result("b"))
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Purge, want 0", c.Len())
	}
}
