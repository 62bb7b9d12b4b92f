package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraps/internal/catcache"
	"wraps/internal/common"
	"wraps/internal/model"
	"wraps/internal/rules"
)

// mockSource serves a fixed merchant set and counts list calls.
type mockSource struct {
	merchants []model.MerchantData
	listCalls atomic.Int32
}

func (m *mockSource) ListMerchantData(_ context.Context) ([]model.MerchantData, error) {
	m.listCalls.Add(1)
	return m.merchants, nil
}

func (m *mockSource) LoadMerchantData(_ context.Context, merchantID int) (*model.MerchantData, error) {
	for i := range m.merchants {
		if m.merchants[i].MerchantID == merchantID {
			return &m.merchants[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockSource) AvailableMerchants(_ context.Context) ([]model.MerchantInfo, error) {
	infos := make([]model.MerchantInfo, 0, len(m.merchants))
	for _, md := range m.merchants {
		infos = append(infos, model.MerchantInfo{ID: md.MerchantID, Name: md.MerchantName})
	}
	return infos, nil
}

// mockCategorizer records every name set it receives and answers from a
// fixed mapping, degrading unknown names to Other.
type mockCategorizer struct {
	mu      sync.Mutex
	calls   [][]string
	results map[string]model.Category
	err     error
	delay   time.Duration
}

func (m *mockCategorizer) Categorize(ctx context.Context, names []string) (map[string]model.Category, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string(nil), names...))
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[string]model.Category, len(names))
	for _, name := range names {
		if c, ok := m.results[name]; ok {
			out[name] = c
		} else {
			out[name] = model.CategoryOther
		}
	}
	return out, nil
}

func (m *mockCategorizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func twoMerchantFixture() []model.MerchantData {
	return []model.MerchantData{
		{
			MerchantID:   1,
			MerchantName: "Tech Store",
			Transactions: []model.Transaction{
				{
					DateTime: model.NewDateTime("2024-01-15T12:00:00Z"),
					Price:    model.Price{Total: 999.00},
					Products: []model.Product{
						{Name: "iPhone 15", Quantity: 1, Price: model.ProductPrice{Total: 999.00, UnitPrice: 999.00}},
					},
					PaymentMethods: []model.PaymentMethod{
						{Brand: "Visa", LastFour: "1234", TransactionAmount: "999.00"},
					},
				},
			},
		},
		{
			MerchantID:   2,
			MerchantName: "Oddities Inc",
			Transactions: []model.Transaction{
				{
					DateTime: model.NewDateTime("2024-02-03T09:30:00Z"),
					Price:    model.Price{Total: 50.00},
					Products: []model.Product{
						{Name: "Mystery Gadget XJ9", Quantity: 1, Price: model.ProductPrice{Total: 50.00, UnitPrice: 50.00}},
					},
				},
			},
		},
	}
}

func TestSummarizeAllRulesOnly(t *testing.T) {
	src := &mockSource{merchants: twoMerchantFixture()}
	engine := New(src, catcache.New(), rules.NewClassifier(), nil, nil)

	summary, err := engine.SummarizeAll(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1049.00, summary.TotalSpent, 1e-9)
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.InDelta(t, 524.50, summary.AverageOrderValue, 1e-9)

	byCategory := make(map[model.Category]model.CategoryBreakdown)
	for _, cb := range summary.TopCategories {
		byCategory[cb.Category] = cb
	}
	require.Contains(t, byCategory, model.CategoryElectronics)
	require.Contains(t, byCategory, model.CategoryOther)
	assert.InDelta(t, 999.00, byCategory[model.CategoryElectronics].TotalSpent, 1e-9)
	assert.InDelta(t, 50.00, byCategory[model.CategoryOther].TotalSpent, 1e-9)

	require.Len(t, summary.MerchantSummaries, 2)
	assert.Equal(t, "Tech Store", summary.MerchantSummaries[0].MerchantName)

	payments := summary.MerchantSummaries[0].PaymentMethodBreakdown
	require.Len(t, payments, 1)
	assert.Equal(t, "Visa", payments[0].Brand)
	assert.Equal(t, "1234", payments[0].LastFour)
	assert.InDelta(t, 999.00, payments[0].TotalSpent, 1e-9)

	require.Len(t, summary.PaymentMethodSummary, 1)
	assert.Equal(t, "Visa", summary.PaymentMethodSummary[0].Brand)
	assert.InDelta(t, 999.00, summary.PaymentMethodSummary[0].TotalSpent, 1e-9)
}

func TestPendingNamesDeduplicatedAndMinimal(t *testing.T) {
	merchants := twoMerchantFixture()
	// Duplicate the unresolvable product across merchants; the needs-AI set
	// must still contain it exactly once.
	merchants[0].Transactions = append(merchants[0].Transactions, model.Transaction{
		DateTime: model.NewDateTime("2024-01-20T12:00:00Z"),
		Price:    model.Price{Total: 50.00},
		Products: []model.Product{
			{Name: "Mystery Gadget XJ9", Quantity: 1, Price: model.ProductPrice{Total: 50.00}},
		},
	})

	cache := catcache.New()
	engine := New(&mockSource{merchants: merchants}, cache, rules.NewClassifier(), nil, nil)

	pending := engine.PendingNames(merchants)
	assert.Equal(t, []string{"Mystery Gadget XJ9"}, pending)

	// Cached names leave the set.
	cache.Set("Mystery Gadget XJ9", model.CategoryElectronics)
	assert.Empty(t, engine.PendingNames(merchants))
}

func TestSummarizeSendsOnlyUnresolvedNames(t *testing.T) {
	categorizer := &mockCategorizer{
		results: map[string]model.Category{"Mystery Gadget XJ9": model.CategoryElectronics},
	}
	src := &mockSource{merchants: twoMerchantFixture()}
	engine := New(src, catcache.New(), rules.NewClassifier(), categorizer, nil)

	summary, err := engine.SummarizeAll(context.Background())
	require.NoError(t, err)

	// Rules already resolve the phone; only the gadget goes out.
	require.Equal(t, 1, categorizer.callCount())
	assert.Equal(t, []string{"Mystery Gadget XJ9"}, categorizer.calls[0])

	// The external result flows into aggregation: everything is Electronics.
	require.Len(t, summary.TopCategories, 1)
	assert.Equal(t, model.CategoryElectronics, summary.TopCategories[0].Category)
	assert.InDelta(t, 1049.00, summary.TopCategories[0].TotalSpent, 1e-9)

	// A second run is served from the cache.
	_, err = engine.SummarizeAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, categorizer.callCount())
}

func TestSummarizeMerchantNotFound(t *testing.T) {
	engine := New(&mockSource{}, catcache.New(), rules.NewClassifier(), nil, nil)

	_, err := engine.SummarizeMerchant(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSummarizeMerchantSingle(t *testing.T) {
	src := &mockSource{merchants: twoMerchantFixture()}
	engine := New(src, catcache.New(), rules.NewClassifier(), nil, nil)

	summary, err := engine.SummarizeMerchant(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Oddities Inc", summary.MerchantName)
	assert.InDelta(t, 50.00, summary.TotalSpent, 1e-9)
	assert.Equal(t, 1, summary.TransactionCount)
}

func TestSummarizeFailsWhenCategorizerErrors(t *testing.T) {
	categorizer := &mockCategorizer{err: errors.New("service exploded")}
	engine := New(&mockSource{merchants: twoMerchantFixture()}, catcache.New(), rules.NewClassifier(), categorizer, nil)

	_, err := engine.SummarizeAll(context.Background())
	assert.Error(t, err)
}

func TestWarmSharesSingleFlight(t *testing.T) {
	categorizer := &mockCategorizer{
		results: map[string]model.Category{"Mystery Gadget XJ9": model.CategoryElectronics},
		delay:   50 * time.Millisecond,
	}
	src := &mockSource{merchants: twoMerchantFixture()}
	cache := catcache.New()
	engine := New(src, cache, rules.NewClassifier(), categorizer, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, engine.Warm(context.Background()))
		}()
	}
	wg.Wait()

	// All five callers share one warm-up pass.
	assert.Equal(t, 1, categorizer.callCount())
	assert.Equal(t, int32(1), src.listCalls.Load())
	assert.True(t, cache.Has("Mystery Gadget XJ9"))
}

func TestWarmWithoutCategorizer(t *testing.T) {
	src := &mockSource{merchants: twoMerchantFixture()}
	engine := New(src, catcache.New(), rules.NewClassifier(), nil, nil)

	require.NoError(t, engine.Warm(context.Background()))
}

func TestRankMerchants(t *testing.T) {
	src := &mockSource{merchants: twoMerchantFixture()}
	engine := New(src, catcache.New(), rules.NewClassifier(), nil, nil)

	summary, err := engine.SummarizeAll(context.Background())
	require.NoError(t, err)

	t.Run("by total", func(t *testing.T) {
		rankings := RankMerchants(summary, model.SortByTotal, 5)
		require.Len(t, rankings.Merchants, 2)
		assert.Equal(t, "Tech Store", rankings.Merchants[0].MerchantName)
		assert.Equal(t, model.SortByTotal, rankings.Metadata.OrderBy)
		assert.Equal(t, 2, rankings.Metadata.TotalMerchants)
		assert.InDelta(t, 524.50, rankings.Metadata.OverallAverageSpend, 1e-9)
		assert.Equal(t, 1, rankings.Metadata.MerchantsAboveAverage)
		assert.Equal(t, 1, rankings.Metadata.MerchantsBelowAverage)
	})

	t.Run("limit truncates", func(t *testing.T) {
		rankings := RankMerchants(summary, model.SortByAverage, 1)
		require.Len(t, rankings.Merchants, 1)
		assert.Equal(t, "Tech Store", rankings.Merchants[0].MerchantName)
		assert.Equal(t, 2, rankings.Metadata.TotalMerchants)
	})

	t.Run("top category attached", func(t *testing.T) {
		rankings := RankMerchants(summary, model.SortByTotal, 5)
		assert.Equal(t, model.CategoryElectronics, rankings.Merchants[0].TopCategory)
		assert.InDelta(t, 999.00, rankings.Merchants[0].TopCategorySpent, 1e-9)
	})
}
