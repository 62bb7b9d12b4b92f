// Package source defines the transaction source boundary and its
// implementations. File layouts, naming conventions and storage formats are
// entirely a source's concern; the pipeline consumes the interface only.
package source

import (
	"context"

	"wraps/internal/model"
)

// Source supplies per-merchant transaction sets.
type Source interface {
	// ListMerchantData loads every merchant's transaction set.
	ListMerchantData(ctx context.Context) ([]model.MerchantData, error)
	// LoadMerchantData loads one merchant's transaction set. A merchant
	// that does not exist yields common.ErrNotFound.
	LoadMerchantData(ctx context.Context, merchantID int) (*model.MerchantData, error)
	// AvailableMerchants lists known merchant IDs and display names.
	AvailableMerchants(ctx context.Context) ([]model.MerchantInfo, error)
}
