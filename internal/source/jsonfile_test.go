package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraps/internal/common"
)

func TestParseMerchantFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantID   int
		wantName string
		wantOK   bool
	}{
		{
			name:     "hyphenated name",
			filename: "development_44_whole-foods.json",
			wantID:   44,
			wantName: "Whole Foods",
			wantOK:   true,
		},
		{
			name:     "underscored name",
			filename: "development_7_corner_store.json",
			wantID:   7,
			wantName: "Corner Store",
			wantOK:   true,
		},
		{
			name:     "single word",
			filename: "development_12_amazon.json",
			wantID:   12,
			wantName: "Amazon",
			wantOK:   true,
		},
		{
			name:     "missing name segment",
			filename: "development_44.json",
			wantOK:   false,
		},
		{
			name:     "non-numeric id",
			filename: "development_abc_store.json",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := parseMerchantFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, info.ID)
				assert.Equal(t, tt.wantName, info.Name)
			}
		})
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const fixtureTransactions = `[
	{
		"dateTime": "2024-01-15T12:00:00Z",
		"price": {"total": 42.50},
		"products": [
			{"name": "Coffee Beans", "quantity": 1, "price": {"total": 42.50, "unitPrice": 42.50}}
		]
	}
]`

func TestJSONFileSourceListMerchantData(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "development_1_coffee-shop.json", fixtureTransactions)
	writeFixture(t, dir, "development_2_empty-mart.json", `[]`)
	writeFixture(t, dir, "development_3_broken.json", `{not json`)
	writeFixture(t, dir, "unrelated.json", fixtureTransactions)
	writeFixture(t, dir, "development_4_notes.txt", "ignore me")

	src := NewJSONFileSource(dir, nil)
	merchants, err := src.ListMerchantData(context.Background())
	require.NoError(t, err)

	// Empty, malformed and non-matching files are all excluded.
	require.Len(t, merchants, 1)
	assert.Equal(t, 1, merchants[0].MerchantID)
	assert.Equal(t, "Coffee Shop", merchants[0].MerchantName)
	require.Len(t, merchants[0].Transactions, 1)
	assert.InDelta(t, 42.50, merchants[0].Transactions[0].Price.Total, 1e-9)
}

func TestJSONFileSourceLoadMerchantData(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "development_1_coffee-shop.json", fixtureTransactions)

	src := NewJSONFileSource(dir, nil)

	t.Run("found", func(t *testing.T) {
		data, err := src.LoadMerchantData(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Coffee Shop", data.MerchantName)
		assert.Len(t, data.Transactions, 1)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := src.LoadMerchantData(context.Background(), 99)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestJSONFileSourceAvailableMerchants(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "development_1_coffee-shop.json", fixtureTransactions)
	writeFixture(t, dir, "development_2_empty-mart.json", `[]`)

	src := NewJSONFileSource(dir, nil)
	infos, err := src.AvailableMerchants(context.Background())
	require.NoError(t, err)

	// Listing is name-based only; the empty merchant still shows up.
	require.Len(t, infos, 2)
	names := []string{infos[0].Name, infos[1].Name}
	assert.Contains(t, names, "Coffee Shop")
	assert.Contains(t, names, "Empty Mart")
}

func TestJSONFileSourceMissingDirectory(t *testing.T) {
	src := NewJSONFileSource("/nonexistent/wraps-data", nil)

	_, err := src.ListMerchantData(context.Background())
	assert.Error(t, err)
}
