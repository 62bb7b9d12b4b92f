package llm

import "fmt"

// Published per-million-token rates and rough per-batch token estimates used
// for pre-flight dry-run reporting. No network call is involved.
const (
	inputTokensPerBatch  = 150
	outputTokensPerBatch = 100
	inputCostPerMillion  = 3.00
	outputCostPerMillion = 15.00
)

// EstimateCost returns a display-ready cost range for categorizing the given
// number of products. The upper bound is 1.5x the point estimate.
func EstimateCost(productCount, batchSize int) string {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	batches := (productCount + batchSize - 1) / batchSize

	totalInputTokens := float64(batches * inputTokensPerBatch)
	totalOutputTokens := float64(batches * outputTokensPerBatch)

	inputCost := totalInputTokens / 1_000_000 * inputCostPerMillion
	outputCost := totalOutputTokens / 1_000_000 * outputCostPerMillion
	totalCost := inputCost + outputCost

	return fmt.Sprintf("$%.2f - $%.2f", totalCost, totalCost*1.5)
}
