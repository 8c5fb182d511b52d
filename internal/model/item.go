// Package model defines the core domain models used throughout the application.
package model

// ItemStatus tracks a single submission through the pipeline.
type ItemStatus string

// Item status constants.
const (
	ItemQueued    ItemStatus = "queued"
	ItemRunning   ItemStatus = "running"
	ItemCompleted ItemStatus = "completed"
	ItemFailed    ItemStatus = "failed"
)

// ContentCategory is the coarse classification of extracted file content.
// A Prototype tag on any attached file entitles the scoring model to a
// fixed categorical bonus; everything else is plain Text.
type ContentCategory string

// Content category constants.
const (
	CategoryPrototype ContentCategory = "Prototype"
	CategoryText      ContentCategory = "Text"
)

// Item is one submission being scored. It is read once from the input
// batch and mutated in place by each pipeline stage; fields are added,
// never removed.
type Item struct {
	ID            string   `json:"idea_id"`
	Title         string   `json:"idea_title"`
	Summary       string   `json:"brief_summary"`
	Challenge     string   `json:"challenge_opportunity"`
	Novelty       string   `json:"novelty_benefits_risks"`
	ResponsibleAI string   `json:"responsible_ai"`
	Files         []string `json:"-"`

	ExtractedContent string          `json:"extracted_files_content"`
	ContentCategory  ContentCategory `json:"content_type,omitempty"`

	Classification *Classification     `json:"classification,omitempty"`
	Evaluation     *ScoreRecord        `json:"evaluation,omitempty"`
	Verification   *VerificationReport `json:"verification,omitempty"`

	Status ItemStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// NarrativeFields returns the free-text fields plus the extracted file
// content, in a stable order. The hallucination heuristic inspects these.
func (i *Item) NarrativeFields() []string {
	return []string{
		i.Title,
		i.Summary,
		i.Challenge,
		i.Novelty,
		i.ResponsibleAI,
		i.ExtractedContent,
	}
}

// ClassificationText assembles the combined text block the classifier and
// scorer operate on.
func (i *Item) ClassificationText() string {
	return "Title: " + i.Title + "\n" +
		"Summary: " + i.Summary + "\n" +
		"Challenge: " + i.Challenge + "\n" +
		"Novelty: " + i.Novelty + "\n" +
		"Responsible AI: " + i.ResponsibleAI + "\n" +
		"File Content: " + i.ExtractedContent
}
