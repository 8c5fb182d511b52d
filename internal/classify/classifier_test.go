package classify

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/llm"
)

type stubClient struct {
	responses []string
	errs      []error
	calls     int
	requests  []llm.Request
}

func (s *stubClient) GenerateStructured(_ context.Context, req llm.Request) (string, error) {
	s.requests = append(s.requests, req)
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fastRetry() common.RetryOptions {
	return common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

const validResponse = `{
	"primary_theme": "Generative AI",
	"secondary_themes": ["Agentic AI"],
	"theme_confidence": 0.9,
	"theme_rationale": "Generates reports from prompts.",
	"industry_name": "Healthcare & Life Sciences",
	"industry_confidence": 0.8,
	"industry_rationale": "Targets clinical workflows.",
	"technologies_extracted": ["RAG", "vector search"],
	"technology_rationale": "Both are named in the summary."
}`

func TestClassify(t *testing.T) {
	client := &stubClient{responses: []string{validResponse}}
	c := New(client, testLogger(), fastRetry())

	result, err := c.Classify(context.Background(), "An AI scribe for clinics")
	require.NoError(t, err)

	assert.Equal(t, "Generative AI", result.PrimaryTheme)
	assert.Equal(t, []string{"Agentic AI"}, result.SecondaryThemes)
	assert.InDelta(t, 0.9, result.ThemeConfidence, 0.001)
	assert.Equal(t, "Healthcare & Life Sciences", result.IndustryName)
	assert.Equal(t, []string{"RAG", "vector search"}, result.Technologies)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].System, "AI THEME DEFINITIONS")
	assert.Contains(t, client.requests[0].System, "Generative AI")
	assert.Contains(t, client.requests[0].Prompt, "An AI scribe for clinics")
}

func TestClassifyRetriesTransientFailures(t *testing.T) {
	client := &stubClient{
		errs:      []error{errors.New("timeout"), nil},
		responses: []string{"", validResponse},
	}
	c := New(client, testLogger(), fastRetry())

	result, err := c.Classify(context.Background(), "idea text")
	require.NoError(t, err)
	assert.Equal(t, "Generative AI", result.PrimaryTheme)
	assert.Equal(t, 2, client.calls)
}

func TestClassifyParseError(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose response", "I think this is about generative AI."},
		{"missing primary theme", `{"industry_name": "Education"}`},
		{"scalar json", `"Generative AI"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{responses: []string{tt.response}}
			c := New(client, testLogger(), fastRetry())

			_, err := c.Classify(context.Background(), "idea text")
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.response, parseErr.Response)
		})
	}
}

func TestClassifyCallFailureIsNotParseError(t *testing.T) {
	client := &stubClient{errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")}}
	c := New(client, testLogger(), fastRetry())

	_, err := c.Classify(context.Background(), "idea text")
	require.Error(t, err)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestClassifyClampsSecondaryThemes(t *testing.T) {
	client := &stubClient{responses: []string{`{
		"primary_theme": "Generative AI",
		"secondary_themes": ["Agentic AI", "AI for Internal Operations", "Responsible AI", "AI in Healthcare", "AI in Education"],
		"industry_name": "Cross-Industry"
	}`}}
	c := New(client, testLogger(), fastRetry())

	result, err := c.Classify(context.Background(), "an idea spanning many themes")
	require.NoError(t, err)

	assert.Equal(t, []string{"Agentic AI", "AI for Internal Operations", "Responsible AI"}, result.SecondaryThemes)
}
