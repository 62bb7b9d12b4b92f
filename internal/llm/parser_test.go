package llm

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraps/internal/model"
)

func TestParseCategoryMapping(t *testing.T) {
	logger := slog.Default()

	t.Run("plain object", func(t *testing.T) {
		mapping, err := parseCategoryMapping(`{"Widget": "Electronics"}`, logger)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryElectronics, mapping["Widget"])
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		content := "Here is the categorization you asked for:\n```json\n" +
			`{"Widget": "Electronics", "Snack Bar": "Food & Beverages"}` +
			"\n```\nLet me know if you need anything else."
		mapping, err := parseCategoryMapping(content, logger)
		require.NoError(t, err)
		assert.Len(t, mapping, 2)
		assert.Equal(t, model.CategoryFoodBev, mapping["Snack Bar"])
	})

	t.Run("invalid category coerced to Other", func(t *testing.T) {
		mapping, err := parseCategoryMapping(`{"Widget": "Gadgets"}`, logger)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryOther, mapping["Widget"])
	})

	t.Run("no JSON object is a parse failure", func(t *testing.T) {
		_, err := parseCategoryMapping("Sorry, I cannot help with that.", logger)
		assert.Error(t, err)
	})

	t.Run("malformed JSON is a parse failure", func(t *testing.T) {
		_, err := parseCategoryMapping(`{"Widget": `+"\n"+`oops}`, logger)
		assert.Error(t, err)
	})

	t.Run("empty object", func(t *testing.T) {
		mapping, err := parseCategoryMapping(`{}`, logger)
		require.NoError(t, err)
		assert.Empty(t, mapping)
	})
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name      string
		products  int
		batchSize int
		want      string
	}{
		// 1 batch: 150 input + 100 output tokens.
		// 150/1M*$3 + 100/1M*$15 = $0.00195, rendered with two decimals.
		{name: "one batch", products: 10, batchSize: 50, want: "$0.00 - $0.00"},
		// 2000 batches: $3.90 point estimate, $5.85 at 1.5x.
		{name: "many batches", products: 100000, batchSize: 50, want: "$3.90 - $5.85"},
		{name: "zero products", products: 0, batchSize: 50, want: "$0.00 - $0.00"},
		{name: "default batch size", products: 100, batchSize: 0, want: "$0.00 - $0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCost(tt.products, tt.batchSize))
		})
	}
}
