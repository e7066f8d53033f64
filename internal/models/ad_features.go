package models

// AdFeatures describes an ad creative for keyword generation. Extracted
// upstream (vision model over the ad image); here it only shapes the
// generator prompt and is echoed into persisted variants.
type AdFeatures struct {
	VisualCues        []string          `json:"visual_cues"`
	PainPoints        []string          `json:"pain_points"`
	VisitorIntent     []string          `json:"visitor_intent"`
	TargetAudience    map[string]string `json:"target_audience"`
	ProductCategory   string            `json:"product_category,omitempty"`
	CampaignObjective string            `json:"campaign_objective,omitempty"`
	ImageURL          string            `json:"image_url,omitempty"`
}
