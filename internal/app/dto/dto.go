package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============ Common ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Tenants ============

type TenantResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Market   string    `json:"market"`
	Currency string    `json:"currency"`
	Segment  string    `json:"segment"`
}

type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int              `json:"total"`
}

type OrgUserResponse struct {
	ID                uuid.UUID `json:"id"`
	UserPrincipalName string    `json:"user_principal_name"`
	DisplayName       string    `json:"display_name"`
	AccountEnabled    bool      `json:"account_enabled"`
	CurrentSkuID      *string   `json:"current_sku_id,omitempty"`
}

type OrgUserListResponse struct {
	Users []OrgUserResponse `json:"users"`
	Total int               `json:"total"`
}

// ============ Tier catalog ============

type TierResponse struct {
	SkuID string `json:"sku_id"`
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	// Effective monthly unit price for the requested tenant scope;
	// omitted when no quotation is effective.
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type TierListResponse struct {
	Tiers []TierResponse `json:"tiers"`
}

type CreateQuotationRequest struct {
	SkuID          string          `json:"sku_id" binding:"required"`
	Market         string          `json:"market" binding:"required"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	Segment        string          `json:"segment" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unit_price" binding:"required"`
	EffectiveStart time.Time       `json:"effective_start" binding:"required"`
	EffectiveEnd   time.Time       `json:"effective_end" binding:"required"`
}

type QuotationResponse struct {
	ID             uint            `json:"id"`
	SkuID          string          `json:"sku_id"`
	Market         string          `json:"market"`
	Currency       string          `json:"currency"`
	Segment        string          `json:"segment"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EffectiveStart time.Time       `json:"effective_start"`
	EffectiveEnd   time.Time       `json:"effective_end"`
}

// ============ Analyses ============

type AnalysisResponse struct {
	ID           uint       `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`

	Summary         AnalysisSummaryResponse  `json:"summary"`
	Recommendations []RecommendationResponse `json:"recommendations,omitempty"`
}

type AnalysisSummaryResponse struct {
	TotalUsers        int             `json:"total_users"`
	LicensedUsers     int             `json:"licensed_users"`
	TotalMonthlyCost  decimal.Decimal `json:"total_monthly_cost"`
	TargetMonthlyCost decimal.Decimal `json:"target_monthly_cost"`
	MonthlySavings    decimal.Decimal `json:"monthly_savings"`
	AnnualSavings     decimal.Decimal `json:"annual_savings"`
	CategoryBreakdown map[string]int  `json:"category_breakdown"`
}

type AnalysisListResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
	Total    int                `json:"total"`
}

type RecommendationResponse struct {
	ID               uint            `json:"id"`
	OrgUserID        uuid.UUID       `json:"org_user_id"`
	CurrentSkuID     *string         `json:"current_sku_id,omitempty"`
	RecommendedSkuID *string         `json:"recommended_sku_id"` // null means remove the license
	MonthlySavings   decimal.Decimal `json:"monthly_savings"`
	Reason           string          `json:"reason"`
	Category         string          `json:"category"`
	Status           string          `json:"status"`
}

type ApplyRecommendationRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// ============ Auth ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     int    `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     int    `json:"role" binding:"omitempty,gte=0,lte=2"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
