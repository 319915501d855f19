package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuotation is one temporal price catalog row. A quotation is
// effective for an instant t when EffectiveStart <= t < EffectiveEnd.
// For a given (sku, market, currency, segment) the validity windows are
// expected not to overlap; overlap is a data-integrity warning handled
// by the resolver.
type PriceQuotation struct {
	ID             uint            `gorm:"primaryKey"`
	SkuID          string          `gorm:"type:varchar(64);not null;index:idx_price_scope"`
	Market         string          `gorm:"type:varchar(10);not null;index:idx_price_scope"`
	Currency       string          `gorm:"type:varchar(3);not null;index:idx_price_scope"`
	Segment        string          `gorm:"type:varchar(30);not null;index:idx_price_scope"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	EffectiveStart time.Time       `gorm:"not null"`
	EffectiveEnd   time.Time       `gorm:"not null"`
}
