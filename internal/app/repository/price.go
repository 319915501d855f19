package repository

import (
	"context"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/pricing"
)

// Price catalog access. Window selection stays in the pricing resolver;
// the repository only narrows by scope.

// QuotationsForSku loads the candidate catalog rows for one SKU in one
// pricing scope.
func (r *Repository) QuotationsForSku(ctx context.Context, skuID string, scope pricing.Scope) ([]ds.PriceQuotation, error) {
	var rows []ds.PriceQuotation
	err := r.db.WithContext(ctx).
		Where("sku_id = ? AND market = ? AND currency = ? AND segment = ?",
			skuID, scope.Market, scope.Currency, scope.Segment).
		Find(&rows).Error
	return rows, err
}

// CreateQuotation inserts a catalog row (admin catalog management).
func (r *Repository) CreateQuotation(ctx context.Context, q *ds.PriceQuotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}
