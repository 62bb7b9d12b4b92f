// Package engine coordinates classification and aggregation of merchant
// transaction sets.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/singleflight"

	"wraps/internal/catcache"
	"wraps/internal/model"
	"wraps/internal/source"
)

// Engine orchestrates the categorization pipeline: a cheap rule pass
// discovers which product names need the external classifier, one batched
// external call resolves exactly that de-duplicated set, and the aggregator
// then classifies cache-first with rules as fallback. The single external
// call per distinct unresolved name is the key cost optimization.
type Engine struct {
	src         source.Source
	cache       *catcache.Cache
	rules       RuleClassifier
	categorizer Categorizer
	logger      *slog.Logger
	warmGroup   singleflight.Group
}

// New creates an engine. categorizer may be nil, meaning no external
// credential is configured and classification is rules-only.
func New(src source.Source, cache *catcache.Cache, rules RuleClassifier, categorizer Categorizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		src:         src,
		cache:       cache,
		rules:       rules,
		categorizer: categorizer,
		logger:      logger,
	}
}

// Summarize classifies and aggregates the given merchant transaction sets.
func (e *Engine) Summarize(ctx context.Context, merchants []model.MerchantData) (model.SpendingSummary, error) {
	if err := e.resolvePending(ctx, merchants); err != nil {
		return model.SpendingSummary{}, err
	}
	return Summarize(merchants, e.classify), nil
}

// SummarizeAll loads every merchant from the source and summarizes them.
func (e *Engine) SummarizeAll(ctx context.Context) (model.SpendingSummary, error) {
	merchants, err := e.src.ListMerchantData(ctx)
	if err != nil {
		return model.SpendingSummary{}, fmt.Errorf("failed to load merchant data: %w", err)
	}
	return e.Summarize(ctx, merchants)
}

// SummarizeMerchant loads and summarizes a single merchant. An unknown
// merchant ID surfaces common.ErrNotFound from the source.
func (e *Engine) SummarizeMerchant(ctx context.Context, merchantID int) (model.MerchantSummary, error) {
	data, err := e.src.LoadMerchantData(ctx, merchantID)
	if err != nil {
		return model.MerchantSummary{}, err
	}

	if err := e.resolvePending(ctx, []model.MerchantData{*data}); err != nil {
		return model.MerchantSummary{}, err
	}

	return SummarizeMerchant(*data, e.classify), nil
}

// Warm pre-resolves categorization for the whole dataset so later summary
// calls hit only the cache. Concurrent callers share a single in-flight
// warm-up.
func (e *Engine) Warm(ctx context.Context) error {
	_, err, _ := e.warmGroup.Do("warm", func() (any, error) {
		merchants, err := e.src.ListMerchantData(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load merchant data: %w", err)
		}
		if err := e.resolvePending(ctx, merchants); err != nil {
			return nil, err
		}
		e.logger.Info("cache warm-up complete", "cached_products", e.cache.Size())
		return nil, nil
	})
	return err
}

// PendingNames returns the de-duplicated set of product names that would
// require the external classifier right now: not cached, and unresolved by
// rules. Order is deterministic.
func (e *Engine) PendingNames(merchants []model.MerchantData) []string {
	seen := make(map[string]struct{})
	var pending []string

	for _, m := range merchants {
		for _, tx := range m.Transactions {
			for _, product := range tx.Products {
				if _, dup := seen[product.Name]; dup {
					continue
				}
				seen[product.Name] = struct{}{}

				if e.cache.Has(product.Name) {
					continue
				}
				if e.rules.Classify(product.Name) == model.CategoryOther {
					pending = append(pending, product.Name)
				}
			}
		}
	}

	sort.Strings(pending)
	return pending
}

// resolvePending runs the external classifier over the needs-AI set and
// merges the results into the cache. Without a configured categorizer the
// step is skipped entirely and the sentinel stays in place.
func (e *Engine) resolvePending(ctx context.Context, merchants []model.MerchantData) error {
	if e.categorizer == nil {
		return nil
	}

	pending := e.PendingNames(merchants)
	if len(pending) == 0 {
		e.logger.Debug("all products cached or rule-resolved, skipping external categorization")
		return nil
	}

	e.logger.Info("resolving products via external classifier", "count", len(pending))

	results, err := e.categorizer.Categorize(ctx, pending)
	// Partial results are still worth caching when the context was
	// cancelled mid-run.
	if len(results) > 0 {
		e.cache.SetMany(results)
	}
	if err != nil {
		return fmt.Errorf("external categorization failed: %w", err)
	}

	return nil
}

// classify is the injected classification function for aggregation: cached
// result first, rule classification as fallback.
func (e *Engine) classify(name string) model.Category {
	if category, ok := e.cache.Get(name); ok {
		return category
	}
	return e.rules.Classify(name)
}
