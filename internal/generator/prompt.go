package generator

import (
	"fmt"
	"sort"
	"strings"

	"kwforge/internal/models"
)

const systemPrompt = "You are a marketing keyword strategist. You respond only with a JSON object."

// buildPrompt renders the ad features into the keyword-generation prompt.
// The model is asked for four groups of keywords so the candidates span
// product, intent, audience, and question phrasings.
func buildPrompt(features models.AdFeatures) string {
	var b strings.Builder

	b.WriteString("Generate keyword variants for an advertisement with these attributes:\n\n")

	if features.ProductCategory != "" {
		fmt.Fprintf(&b, "Product category: %s\n", features.ProductCategory)
	}
	if features.CampaignObjective != "" {
		fmt.Fprintf(&b, "Campaign objective: %s\n", features.CampaignObjective)
	}
	if len(features.VisualCues) > 0 {
		fmt.Fprintf(&b, "Visual cues: %s\n", strings.Join(features.VisualCues, ", "))
	}
	if len(features.PainPoints) > 0 {
		fmt.Fprintf(&b, "Pain points addressed: %s\n", strings.Join(features.PainPoints, ", "))
	}
	if len(features.VisitorIntent) > 0 {
		fmt.Fprintf(&b, "Visitor intent: %s\n", strings.Join(features.VisitorIntent, ", "))
	}
	if len(features.TargetAudience) > 0 {
		b.WriteString("Target audience:\n")
		keys := make([]string, 0, len(features.TargetAudience))
		for k := range features.TargetAudience {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, features.TargetAudience[k])
		}
	}

	b.WriteString(`
Produce:
1. 5 short-tail keywords (1-2 words) describing the product
2. 5 medium-tail keywords (3-4 words) matching visitor intent
3. 3 long-tail keywords (5+ words) addressing the pain points
4. 2 question-based keywords a prospective customer would search

Respond with a single JSON object of the form {"keywords": ["...", "..."]}
containing all keywords in one flat array. Keywords must be lowercase.`)

	return b.String()
}
