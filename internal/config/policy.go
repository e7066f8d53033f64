package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kwforge/internal/ranking"
)

// Policy is the tunable scoring and ranking policy, loaded from an optional
// YAML file. Quotas and weights are campaign policy rather than code, so
// operators can adjust them without a rebuild.
type Policy struct {
	Weights             ranking.Weights `yaml:"weights"`
	Quotas              ranking.Quotas  `yaml:"quotas"`
	BrandTokens         []string        `yaml:"brand_tokens"`
	SimilarityThreshold float64         `yaml:"similarity_threshold"`
	SimilarTopN         int             `yaml:"similar_top_n"`
	TotalNeeded         int             `yaml:"total_needed"`
}

// DefaultPolicy returns the documented defaults: 0.4/0.25/0.25/0.1 weights,
// a 3/5/2/2 bucket split over 12 slots, similarity floor 0.3, top-5
// matches.
func DefaultPolicy() Policy {
	return Policy{
		Weights:             ranking.DefaultWeights(),
		Quotas:              ranking.DefaultQuotas(),
		SimilarityThreshold: ranking.DefaultSimilarityThreshold,
		SimilarTopN:         ranking.DefaultTopN,
		TotalNeeded:         ranking.DefaultTotalNeeded,
	}
}

// LoadPolicy reads the policy file at path. A missing file is not an error;
// the defaults apply. File values override defaults field by field, so a
// partial file is fine.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return policy, nil
		}
		return policy, fmt.Errorf("failed to read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return policy, err
	}
	return policy, nil
}

// Validate rejects policies that would make scoring degenerate.
func (p Policy) Validate() error {
	if p.SimilarityThreshold < 0 || p.SimilarityThreshold >= 1 {
		return fmt.Errorf("similarity_threshold %v out of [0, 1)", p.SimilarityThreshold)
	}
	if p.SimilarTopN <= 0 {
		return fmt.Errorf("similar_top_n must be positive, got %d", p.SimilarTopN)
	}
	if p.TotalNeeded <= 0 {
		return fmt.Errorf("total_needed must be positive, got %d", p.TotalNeeded)
	}
	w := p.Weights
	if w.Volume < 0 || w.Difficulty < 0 || w.Competition < 0 || w.CPC < 0 {
		return fmt.Errorf("efficiency weights must be non-negative")
	}
	if w.Volume+w.Difficulty+w.Competition+w.CPC == 0 {
		return fmt.Errorf("efficiency weights must not all be zero")
	}
	q := p.Quotas
	if q.ShortTail < 0 || q.MediumTail < 0 || q.LongTail < 0 || q.QuestionBased < 0 {
		return fmt.Errorf("bucket quotas must be non-negative")
	}
	return nil
}
