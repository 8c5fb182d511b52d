package model

// Classification is the taxonomy mapping produced by a single structured
// inference call over the item's aggregated text.
type Classification struct {
	PrimaryTheme    string   `json:"primary_theme"`
	SecondaryThemes []string `json:"secondary_themes"`
	ThemeConfidence float64  `json:"theme_confidence"`
	ThemeRationale  string   `json:"theme_rationale"`

	IndustryName       string  `json:"industry_name"`
	IndustryConfidence float64 `json:"industry_confidence"`
	IndustryRationale  string  `json:"industry_rationale"`

	Technologies        []string `json:"technologies_extracted"`
	TechnologyRationale string   `json:"technology_rationale"`
}
