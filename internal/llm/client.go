// Package llm provides clients for structured-output inference providers.
//
// The pipeline treats the inference capability as an opaque, possibly
// fallible remote function: one prompt (optionally with image attachments)
// in, one text response out. All retry, fallback, and response-shape
// normalization logic lives on this side of the boundary.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forgeworks/idea-forge/internal/common"
)

// Request is a single structured-output inference call.
type Request struct {
	System string
	Prompt string
	// Images holds base64 data URIs attached as vision inputs.
	Images    []string
	MaxTokens int
}

// Client defines the interface for inference providers.
type Client interface {
	// GenerateStructured issues one call and returns the raw response text.
	// Responses may arrive wrapped in markdown code fences; callers are
	// expected to pass them through DecodeObject.
	GenerateStructured(ctx context.Context, req Request) (string, error)
}

// Config holds configuration for an inference client.
type Config struct {
	Provider    string
	APIKey      string
	Endpoint    string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewClient creates an inference client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "azure-openai":
		return newOpenAIClient(cfg)
	case "gemini":
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported inference provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
