package model

// CheckStatus is the outcome of one verification sub-check.
type CheckStatus string

// Check status constants.
const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckWarning CheckStatus = "warning"
)

// VerificationStatus is the overall outcome of verification for one item.
type VerificationStatus string

// Verification status constants.
const (
	VerificationCompleted VerificationStatus = "completed"
	VerificationFailed    VerificationStatus = "failed"
)

// CoverageCheck verifies that every rubric criterion appears among the
// scored criteria. Any miss is a hard failure.
type CoverageCheck struct {
	Status           CheckStatus    `json:"status"`
	MissingCriteria  []CriterionKey `json:"missing_criteria"`
	MatchedCriteria  int            `json:"matched_criteria"`
	RequiredCriteria int            `json:"required_criteria"`
}

// StructureCheck verifies required top-level fields and per-criterion
// completeness of the score record.
type StructureCheck struct {
	Status   CheckStatus `json:"status"`
	Problems []string    `json:"problems"`
}

// HallucinationCheck surfaces suspiciously confident scores on items with
// almost no source text. It never blocks the pipeline.
type HallucinationCheck struct {
	Status              CheckStatus `json:"status"`
	IsHallucinationFree bool        `json:"is_hallucination_free"`
	Suspicions          []string    `json:"suspicions"`
}

// WeightedScoreCheck compares the independently recomputed total against
// the model's reported total, net of any categorical bonus.
type WeightedScoreCheck struct {
	Status        CheckStatus `json:"status"`
	ManualTotal   float64     `json:"manual_total"`
	ReportedTotal float64     `json:"reported_total"`
	BonusApplied  float64     `json:"bonus_applied"`
	Difference    float64     `json:"difference"`
	Tolerance     float64     `json:"tolerance"`
	IsAccurate    bool        `json:"is_accurate"`
}

// VerificationReport is the structured output of all consistency checks
// over one item's score record.
type VerificationReport struct {
	Status        VerificationStatus `json:"verification_status"`
	ChecksPassed  int                `json:"checks_passed"`
	ChecksFailed  int                `json:"checks_failed"`
	Warnings      []string           `json:"warnings"`
	Coverage      CoverageCheck      `json:"rubric_coverage"`
	Structure     StructureCheck     `json:"structural_validity"`
	Hallucination HallucinationCheck `json:"hallucination_check"`
	WeightedScore WeightedScoreCheck `json:"weighted_score_verification"`
}
