package ds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Analysis is one run of the recommendation engine over a tenant.
// Once the status is terminal the row is immutable; only the attached
// recommendations keep their own independent lifecycle.
type Analysis struct {
	ID         uint           `gorm:"primaryKey"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status     AnalysisStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt *time.Time     `gorm:"default:null"`
	// Set only when Status == failed.
	ErrorMessage string `gorm:"type:text"`

	// Summary, filled on completion (see Summarize).
	TotalUsers        int             `gorm:"not null;default:0"`
	LicensedUsers     int             `gorm:"not null;default:0"`
	TotalMonthlyCost  decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	TargetMonthlyCost decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	MonthlySavings    decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	AnnualSavings     decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	// JSON object: reason category -> recommendation count.
	CategoryBreakdown string `gorm:"type:text"`

	Tenant Tenant `gorm:"foreignKey:TenantID"`
}

// Recommendation is one proposed license change produced by an analysis.
// RecommendedSkuID == nil means "remove the license". The status is
// mutated only by an operator accept/reject action, never by the engine.
type Recommendation struct {
	ID               uint                 `gorm:"primaryKey"`
	AnalysisID       uint                 `gorm:"not null;index"`
	OrgUserID        uuid.UUID            `gorm:"type:uuid;not null"`
	CurrentSkuID     *string              `gorm:"type:varchar(64)"`
	RecommendedSkuID *string              `gorm:"type:varchar(64)"`
	MonthlySavings   decimal.Decimal      `gorm:"type:decimal(12,4);not null"`
	Reason           string               `gorm:"type:text;not null"`
	Category         string               `gorm:"type:varchar(30);not null"`
	Status           RecommendationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt        time.Time            `gorm:"not null"`

	Analysis Analysis `gorm:"foreignKey:AnalysisID"`
	OrgUser  OrgUser  `gorm:"foreignKey:OrgUserID"`
}
