package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"wraps/internal/model"
)

// parseCategoryMapping extracts a name-to-category JSON object from a raw
// completion. Models routinely wrap the object in prose or markdown fences,
// so the parser takes the span from the first '{' to the last '}'. A
// response with no such span is a parse failure and triggers the caller's
// retry path. Values outside the closed category set are coerced to Other
// per entry with a warning.
func parseCategoryMapping(content string, logger *slog.Logger) (map[string]model.Category, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	validated := make(map[string]model.Category, len(parsed))
	for name, category := range parsed {
		if model.ValidCategory(category) {
			validated[name] = model.Category(category)
			continue
		}
		logger.Warn("invalid category in response, coercing to Other",
			"product", name,
			"category", category)
		validated[name] = model.CategoryOther
	}

	return validated, nil
}
