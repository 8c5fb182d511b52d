package model

// Recommendation is the investment-style tag accompanying a score set.
type Recommendation string

// Recommendation tiers.
const (
	RecommendInvest   Recommendation = "invest"
	RecommendConsider Recommendation = "consider-with-mitigations"
	RecommendDecline  Recommendation = "do-not-invest"
)

// CriterionScore is one scored rubric criterion.
type CriterionScore struct {
	Justification    string `json:"justification"`
	Score            int    `json:"score"`
	InsufficientInfo bool   `json:"insufficient_info"`
}

// ScoreRecord holds the full scoring output for one item.
//
// ReportedTotal is the model's self-reported weighted total and is treated
// as a claim to be verified, not a fact. WeightedTotal is recomputed
// server-side from the criterion scores and rubric weights and is the only
// total downstream consumers may use.
type ScoreRecord struct {
	Scores         map[CriterionKey]CriterionScore `json:"scores"`
	KeyStrengths   []string                        `json:"key_strengths"`
	KeyConcerns    []string                        `json:"key_concerns"`
	Recommendation Recommendation                  `json:"investment_recommendation"`
	ReportedTotal  float64                         `json:"reported_total"`
	WeightedTotal  float64                         `json:"weighted_total"`
	ParseFallback  bool                            `json:"parse_fallback,omitempty"`
}
