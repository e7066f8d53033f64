// Package cache provides a bounded, expiring cache for scored keywords,
// keyed by normalized keyword text. It replaces unbounded per-process maps:
// capacity evicts least-recently-used entries and the TTL bounds staleness
// against corpus refreshes.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"kwforge/internal/ranking"
)

// Scores is a concurrency-safe LRU of enriched keyword results.
type Scores struct {
	lru *expirable.LRU[string, ranking.Enriched]
}

// New creates a cache holding at most size entries, each expiring after ttl.
func New(size int, ttl time.Duration) *Scores {
	return &Scores{
		lru: expirable.NewLRU[string, ranking.Enriched](size, nil, ttl),
	}
}

// Get returns the cached result for keyword, if present and fresh.
func (s *Scores) Get(keyword string) (ranking.Enriched, bool) {
	return s.lru.Get(normalize(keyword))
}

// Put stores the result for keyword.
func (s *Scores) Put(keyword string, result ranking.Enriched) {
	s.lru.Add(normalize(keyword), result)
}

// Purge drops every entry. Called after a corpus index swap so stale
// estimates do not outlive the basis they were computed from.
func (s *Scores) Purge() {
	s.lru.Purge()
}

// Len returns the number of live entries.
func (s *Scores) Len() int {
	return s.lru.Len()
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
