package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wraps/internal/common"
	"wraps/internal/model"
)

const systemPrompt = "You are a product categorization expert. Respond only with the requested JSON object."

// Categorizer resolves product names to categories via the external
// language-model service. Input is split into fixed-size batches processed
// strictly sequentially with an unconditional inter-batch delay, respecting
// the service's rate limits. A batch that exhausts its retries degrades to
// the sentinel category without aborting the remaining batches.
type Categorizer struct {
	client     Client
	logger     *slog.Logger
	retryOpts  common.RetryOptions
	batchSize  int
	batchDelay time.Duration

	// OnBatch, when set, is invoked after each batch completes with the
	// number of batches done and the total batch count.
	OnBatch func(done, total int)
}

// NewCategorizer creates a categorizer backed by the Anthropic API.
func NewCategorizer(cfg Config, logger *slog.Logger) (*Categorizer, error) {
	client, err := newAnthropicClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return newCategorizerWithClient(client, cfg, logger), nil
}

// newCategorizerWithClient wires an explicit client; tests use it to inject
// stubs.
func newCategorizerWithClient(client Client, cfg Config, logger *slog.Logger) *Categorizer {
	if logger == nil {
		logger = slog.Default()
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batchDelay := cfg.BatchDelay
	if batchDelay <= 0 {
		batchDelay = DefaultBatchDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	return &Categorizer{
		client:     client,
		logger:     logger,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		retryOpts: common.RetryOptions{
			MaxAttempts:  maxRetries,
			InitialDelay: retryDelay,
		},
	}
}

// Categorize resolves every name in the input to a category. The returned
// mapping always covers the full input: names whose batch failed after all
// retries map to model.CategoryOther.
func (c *Categorizer) Categorize(ctx context.Context, names []string) (map[string]model.Category, error) {
	results := make(map[string]model.Category, len(names))
	if len(names) == 0 {
		return results, nil
	}

	batches := createBatches(names, c.batchSize)

	c.logger.Info("categorizing products via LLM",
		"products", len(names),
		"batches", len(batches))

	for i, batch := range batches {
		c.logger.Debug("processing batch",
			"batch", i+1,
			"total", len(batches),
			"size", len(batch))

		batchResults, err := c.categorizeBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			// Failure is local to the batch: degrade to the sentinel and
			// keep going.
			c.logger.Warn("batch failed after retries, degrading to Other",
				"batch", i+1,
				"size", len(batch),
				"error", err)
			for _, name := range batch {
				results[name] = model.CategoryOther
			}
		} else {
			for name, category := range batchResults {
				results[name] = category
			}
			// Names the model dropped from its response still need an answer.
			for _, name := range batch {
				if _, ok := results[name]; !ok {
					results[name] = model.CategoryOther
				}
			}
		}

		if c.OnBatch != nil {
			c.OnBatch(i+1, len(batches))
		}

		if i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(c.batchDelay):
			}
		}
	}

	return results, nil
}

// categorizeBatch sends one batch, retrying transient failures.
func (c *Categorizer) categorizeBatch(ctx context.Context, batch []string) (map[string]model.Category, error) {
	prompt := buildPrompt(batch)

	var mapping map[string]model.Category

	err := common.WithRetry(ctx, func() error {
		content, err := c.client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}

		parsed, err := parseCategoryMapping(content, c.logger)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}

		mapping = parsed
		return nil
	}, c.retryOpts)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
	}

	return mapping, nil
}

// buildPrompt enumerates the closed category list and the batch of names,
// asking for a direct name-to-category JSON object.
func buildPrompt(names []string) string {
	categories := make([]string, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		categories = append(categories, string(c))
	}

	var products strings.Builder
	for i, name := range names {
		fmt.Fprintf(&products, "%d. %s\n", i+1, name)
	}

	return fmt.Sprintf(`You are a product categorization expert. Categorize each product into the most appropriate category.

Available categories:
%s

Products to categorize:
%s
Instructions:
- Return ONLY a valid JSON object
- Format: {"product_name": "category"}
- Use exact category names from the list above
- If uncertain, use "Other"
- Be consistent with similar products

JSON response:`, strings.Join(categories, ", "), products.String())
}

// createBatches splits names into slices of at most batchSize.
func createBatches(names []string, batchSize int) [][]string {
	var batches [][]string
	for start := 0; start < len(names); start += batchSize {
		end := start + batchSize
		if end > len(names) {
			end = len(names)
		}
		batches = append(batches, names[start:end])
	}
	return batches
}
