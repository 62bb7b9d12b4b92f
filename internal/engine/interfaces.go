package engine

import (
	"context"

	"wraps/internal/model"
)

// Categorizer resolves product names to categories via an external service.
type Categorizer interface {
	Categorize(ctx context.Context, names []string) (map[string]model.Category, error)
}

// RuleClassifier resolves a product name to a category using local rules.
type RuleClassifier interface {
	Classify(productName string) model.Category
}
