package llm

import (
	"context"
	"time"
)

// Client defines the contract with the external text-generation service:
// one prompt in, one text completion out.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration for the batch categorizer.
type Config struct {
	APIKey     string
	Model      string
	BatchSize  int
	MaxRetries int
	RetryDelay time.Duration
	BatchDelay time.Duration
}

// Defaults applied by NewCategorizer when fields are zero.
const (
	DefaultBatchSize  = 50
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultBatchDelay = time.Second
	DefaultModel      = "claude-sonnet-4-20250514"
)
