// Package llm provides the external language-model fallback for product
// categorization. It batches unresolved product names, sends each batch to
// the Anthropic API with retry and backoff, and validates responses against
// the closed category set.
package llm
