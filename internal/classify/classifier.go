// Package classify assigns a theme, an industry, and a technology list to
// a submission in a single structured inference call.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/llm"
	"github.com/forgeworks/idea-forge/internal/model"
)

// ParseError means the model responded but the response could not be
// interpreted as a classification. Callers treat it as an item failure
// rather than inventing a default.
type ParseError struct {
	Response string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse classification response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Classifier runs the combined theme, industry, and technology call.
type Classifier struct {
	client    llm.Client
	logger    *slog.Logger
	retryOpts common.RetryOptions
}

// New creates a classifier.
func New(client llm.Client, logger *slog.Logger, retryOpts common.RetryOptions) *Classifier {
	return &Classifier{client: client, logger: logger, retryOpts: retryOpts}
}

// Classify runs all classifications in one inference call over the item's
// combined text. Transient call failures are retried; an unparseable
// response is returned as a *ParseError.
func (c *Classifier) Classify(ctx context.Context, itemText string) (model.Classification, error) {
	system := buildSystemPrompt()
	prompt := fmt.Sprintf("Classify this AI innovation idea:\n\n%s", itemText)

	var response string
	err := common.WithRetry(ctx, func() error {
		var callErr error
		response, callErr = c.client.GenerateStructured(ctx, llm.Request{
			System: system,
			Prompt: prompt,
		})
		return callErr
	}, c.retryOpts)
	if err != nil {
		return model.Classification{}, fmt.Errorf("classification call failed: %w", err)
	}

	obj, err := llm.DecodeObject(response)
	if err != nil {
		return model.Classification{}, &ParseError{Response: response, Err: err}
	}

	result := model.Classification{
		PrimaryTheme:        llm.String(obj, "primary_theme"),
		SecondaryThemes:     llm.StringList(obj, "secondary_themes"),
		ThemeConfidence:     llm.Float(obj, "theme_confidence"),
		ThemeRationale:      llm.String(obj, "theme_rationale"),
		IndustryName:        llm.String(obj, "industry_name"),
		IndustryConfidence:  llm.Float(obj, "industry_confidence"),
		IndustryRationale:   llm.String(obj, "industry_rationale"),
		Technologies:        llm.StringList(obj, "technologies_extracted"),
		TechnologyRationale: llm.String(obj, "technology_rationale"),
	}

	// At most three secondary themes are kept, in response order.
	if len(result.SecondaryThemes) > 3 {
		result.SecondaryThemes = result.SecondaryThemes[:3]
	}

	if result.PrimaryTheme == "" {
		return model.Classification{}, &ParseError{
			Response: response,
			Err:      fmt.Errorf("response missing primary_theme"),
		}
	}

	c.logger.Debug("classification complete",
		"primary_theme", result.PrimaryTheme,
		"industry", result.IndustryName,
		"technologies", len(result.Technologies))

	return result, nil
}

func buildSystemPrompt() string {
	return fmt.Sprintf(`You are an expert classifier of AI innovation ideas.

%s

INDUSTRIES:
%s

Classify the submission against the theme definitions and industry list
above. Pick exactly one primary theme and one industry, both by their
exact names from the lists. Extract the concrete technologies the
submission names or clearly implies.

Respond with a single JSON object:
{
  "primary_theme": "<theme name>",
  "secondary_themes": ["<theme name>", ...],
  "theme_confidence": <0.0-1.0>,
  "theme_rationale": "<1-2 sentences>",
  "industry_name": "<industry name>",
  "industry_confidence": <0.0-1.0>,
  "industry_rationale": "<1-2 sentences>",
  "technologies_extracted": ["<technology>", ...],
  "technology_rationale": "<1-2 sentences>"
}`, themeContext(), "- "+strings.Join(Industries, "\n- "))
}
