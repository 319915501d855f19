// Package pricing resolves the single effective unit price for a SKU in
// a tenant's pricing scope at a given instant.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrNoQuotation is returned when no catalog row is effective for the
// requested scope and instant.
type ErrNoQuotation struct {
	SkuID    string
	Market   string
	Currency string
	Segment  string
	AsOf     time.Time
}

func (e *ErrNoQuotation) Error() string {
	return fmt.Sprintf("no effective price for sku %s (market=%s currency=%s segment=%s) at %s",
		e.SkuID, e.Market, e.Currency, e.Segment, e.AsOf.Format(time.RFC3339))
}

// Scope identifies the market/currency/segment a price is quoted for.
type Scope struct {
	Market   string
	Currency string
	Segment  string
}

// Resolver looks up the effective monthly unit price of a SKU.
type Resolver interface {
	Effective(ctx context.Context, skuID string, scope Scope, asOf time.Time) (decimal.Decimal, error)
}

// QuotationSource loads the candidate catalog rows for one SKU/scope.
// The repository implements this over the price_quotations table.
type QuotationSource interface {
	QuotationsForSku(ctx context.Context, skuID string, scope Scope) ([]ds.PriceQuotation, error)
}

// CatalogResolver resolves prices from a quotation source and applies
// the validity-window selection rules.
type CatalogResolver struct {
	Source QuotationSource
}

func NewCatalogResolver(source QuotationSource) *CatalogResolver {
	return &CatalogResolver{Source: source}
}

// Effective returns the unit price whose window contains asOf. When the
// catalog violates the no-overlap invariant the row with the most recent
// EffectiveStart wins; the overlap is logged as a warning, never picked
// silently.
func (r *CatalogResolver) Effective(ctx context.Context, skuID string, scope Scope, asOf time.Time) (decimal.Decimal, error) {
	rows, err := r.Source.QuotationsForSku(ctx, skuID, scope)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading quotations for sku %s: %w", skuID, err)
	}

	picked, matched := pickEffective(rows, asOf)
	if matched == 0 {
		return decimal.Zero, &ErrNoQuotation{
			SkuID:    skuID,
			Market:   scope.Market,
			Currency: scope.Currency,
			Segment:  scope.Segment,
			AsOf:     asOf,
		}
	}
	if matched > 1 {
		logrus.Warnf("price catalog overlap for sku %s (%s/%s/%s) at %s: %d effective rows, using latest effective_start",
			skuID, scope.Market, scope.Currency, scope.Segment, asOf.Format(time.RFC3339), matched)
	}

	return picked.UnitPrice, nil
}

// pickEffective selects among rows whose [EffectiveStart, EffectiveEnd)
// window contains asOf, preferring the most recent EffectiveStart. It
// returns the pick and how many rows matched.
func pickEffective(rows []ds.PriceQuotation, asOf time.Time) (ds.PriceQuotation, int) {
	var picked ds.PriceQuotation
	matched := 0

	for _, q := range rows {
		if asOf.Before(q.EffectiveStart) || !asOf.Before(q.EffectiveEnd) {
			continue
		}
		if matched == 0 || q.EffectiveStart.After(picked.EffectiveStart) {
			picked = q
		}
		matched++
	}

	return picked, matched
}
