// Package pipeline wires candidate generation, similarity scoring, metric
// estimation, composite scoring, and diversity ranking into the two
// operations the API exposes: generating variants for an ad and evaluating
// arbitrary keywords.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"kwforge/internal/cache"
	"kwforge/internal/config"
	"kwforge/internal/db"
	"kwforge/internal/generator"
	"kwforge/internal/metrics"
	"kwforge/internal/models"
	"kwforge/internal/ranking"
	"kwforge/internal/validation"
)

var (
	// ErrIndexNotReady is returned before the first successful corpus load.
	ErrIndexNotReady = errors.New("corpus index not built yet")

	// ErrNoCandidates is returned when no usable keyword candidates remain
	// after validation.
	ErrNoCandidates = errors.New("no valid keyword candidates")
)

// Pipeline holds the scoring components and the current corpus index. The
// index is swapped atomically by the refresher; requests always score
// against a complete snapshot.
type Pipeline struct {
	db     *db.DB
	source generator.CandidateSource
	policy config.Policy
	scores *cache.Scores
	ranker *ranking.Ranker
	est    *ranking.Estimator

	index atomic.Pointer[ranking.Index]
}

// GenerationResult is the outcome of one variant generation request.
type GenerationResult struct {
	RequestID uuid.UUID               `json:"request_id"`
	Variants  []models.KeywordVariant `json:"variants"`
}

// New builds a pipeline. The index is empty until RefreshIndex succeeds.
func New(database *db.DB, source generator.CandidateSource, policy config.Policy, cacheSize int, cacheTTL time.Duration) *Pipeline {
	return &Pipeline{
		db:     database,
		source: source,
		policy: policy,
		scores: cache.New(cacheSize, cacheTTL),
		ranker: &ranking.Ranker{Quotas: policy.Quotas},
		est:    &ranking.Estimator{BrandTokens: policy.BrandTokens},
	}
}

// RefreshIndex reloads the corpus from the database, rebuilds both vector
// spaces, and swaps the new index in. The score cache is purged afterwards
// since cached estimates were computed against the old corpus.
func (p *Pipeline) RefreshIndex(ctx context.Context) error {
	entries, err := p.db.GetAllCorpusKeywords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	idx, err := ranking.BuildIndex(entries)
	if err != nil {
		return fmt.Errorf("failed to build corpus index: %w", err)
	}

	p.index.Store(idx)
	p.scores.Purge()
	slog.Info("corpus index rebuilt", "keywords", idx.Size())
	return nil
}

// Close releases pipeline-held state. The database pool is owned by the
// caller and closed separately.
func (p *Pipeline) Close() {
	p.index.Store(nil)
	p.scores.Purge()
}

// Ready reports whether the corpus index has been built.
func (p *Pipeline) Ready() bool {
	return p.index.Load() != nil
}

// GenerateVariants runs the full pipeline for one ad: generate candidates,
// score them against the corpus, and persist the diversity-ranked winners
// under a fresh request ID.
func (p *Pipeline) GenerateVariants(ctx context.Context, features models.AdFeatures) (*GenerationResult, error) {
	timer := prometheus.NewTimer(metrics.GenerationDuration)
	defer timer.ObserveDuration()

	result, err := p.generateVariants(ctx, features)
	if err != nil {
		metrics.GenerationRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.GenerationRequests.WithLabelValues("success").Inc()
	return result, nil
}

func (p *Pipeline) generateVariants(ctx context.Context, features models.AdFeatures) (*GenerationResult, error) {
	idx := p.index.Load()
	if idx == nil {
		return nil, ErrIndexNotReady
	}

	var imageURL *string
	if features.ImageURL != "" {
		if ok, reason := validation.ValidateURL(features.ImageURL); !ok {
			return nil, fmt.Errorf("invalid image_url: %s", reason)
		}
		imageURL = &features.ImageURL
	}

	raw, err := p.source.GenerateKeywords(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("candidate generation failed: %w", err)
	}

	candidates := toCandidates(raw, models.SourceGenerated)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	enriched, err := p.enrich(ctx, idx, candidates)
	if err != nil {
		return nil, err
	}
	p.recordLookups(enriched)

	// Corpus keywords surfaced as strong matches are candidates in their
	// own right: they carry measured metrics and often outrank the
	// generated phrasing that led to them.
	if extra := corpusCandidates(enriched, candidates); len(extra) > 0 {
		retrieved, err := p.enrich(ctx, idx, extra)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, retrieved...)
	}

	scored := ranking.ScoreBatch(enriched, p.policy.Weights)
	ranked := p.ranker.Rank(scored, p.policy.TotalNeeded)

	requestID := uuid.New()
	variants := make([]models.KeywordVariant, len(ranked))
	for i, s := range ranked {
		variants[i] = models.FromScored(requestID, s, ranking.Classify(s.Text), imageURL)
	}

	if err := p.db.InsertVariants(ctx, variants); err != nil {
		return nil, fmt.Errorf("failed to persist variants: %w", err)
	}

	slog.Info("generated keyword variants",
		"request_id", requestID,
		"candidates", len(candidates),
		"selected", len(variants),
	)
	return &GenerationResult{RequestID: requestID, Variants: variants}, nil
}

// EvaluateKeywords scores caller-supplied keywords against the corpus
// without persisting anything. Output order matches input order; keywords
// failing validation are dropped.
func (p *Pipeline) EvaluateKeywords(ctx context.Context, keywords []string) ([]models.ScoredKeyword, error) {
	idx := p.index.Load()
	if idx == nil {
		return nil, ErrIndexNotReady
	}

	candidates := toCandidates(keywords, models.SourceRetrieved)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	enriched, err := p.enrich(ctx, idx, candidates)
	if err != nil {
		return nil, err
	}
	p.recordLookups(enriched)
	return ranking.ScoreBatch(enriched, p.policy.Weights), nil
}

// corpusCandidates collects the distinct corpus keywords matched by the
// enriched batch, excluding any that duplicate an existing candidate.
// These carry the retrieved provenance tag.
func corpusCandidates(enriched []ranking.Enriched, existing []models.Candidate) []models.Candidate {
	seen := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		seen[c.Text] = struct{}{}
	}

	var out []models.Candidate
	for _, e := range enriched {
		for _, m := range e.Matches {
			if _, dup := seen[m.CorpusKeyword]; dup {
				continue
			}
			seen[m.CorpusKeyword] = struct{}{}
			out = append(out, models.Candidate{Text: m.CorpusKeyword, Source: models.SourceRetrieved})
		}
	}
	return out
}

// enrich resolves each candidate through the score cache, running the
// scorer and estimator only for misses. Cached results keep the caller's
// candidate so the provenance tag survives cache reuse.
func (p *Pipeline) enrich(ctx context.Context, idx *ranking.Index, candidates []models.Candidate) ([]ranking.Enriched, error) {
	results := make([]ranking.Enriched, len(candidates))
	var missIdx []int
	var misses []models.Candidate

	for i, c := range candidates {
		if hit, ok := p.scores.Get(c.Text); ok {
			hit.Candidate = c
			results[i] = hit
			metrics.CacheHits.WithLabelValues("hit").Inc()
			continue
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
		missIdx = append(missIdx, i)
		misses = append(misses, c)
	}

	if len(misses) > 0 {
		fresh, err := ranking.EnrichAll(ctx, idx, p.est, misses, p.policy.SimilarTopN, p.policy.SimilarityThreshold)
		if err != nil {
			return nil, err
		}
		for j, e := range fresh {
			results[missIdx[j]] = e
			p.scores.Put(e.Candidate.Text, e)
		}
	}
	return results, nil
}

func (p *Pipeline) recordLookups(enriched []ranking.Enriched) {
	for _, e := range enriched {
		metrics.RecordKeywordLookup(e.Candidate.Text, lookupOutcome(e.Matches))
	}
}

// lookupOutcome classifies a scorer result for the lookup counters. An
// exact corpus hit is a single match at similarity 1.
func lookupOutcome(matches []models.SimilarityMatch) string {
	switch {
	case len(matches) == 0:
		return models.OutcomeNoMatch
	case matches[0].Similarity == 1.0:
		return models.OutcomeExact
	default:
		return models.OutcomeSimilar
	}
}

// toCandidates normalizes and validates raw keyword strings, dropping
// anything that is not a clean keyword phrase.
func toCandidates(raw []string, source string) []models.Candidate {
	seen := make(map[string]struct{}, len(raw))
	out := make([]models.Candidate, 0, len(raw))
	for _, kw := range raw {
		kw = validation.NormalizeKeyword(kw)
		if !validation.ValidateKeyword(kw) {
			if kw != "" {
				slog.Debug("dropping invalid candidate keyword", "keyword", kw)
			}
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, models.Candidate{Text: kw, Source: source})
	}
	return out
}
