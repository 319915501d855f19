package ds

import (
	"time"

	"github.com/google/uuid"
)

// OrgUser is a member of a tenant's directory (the subject of the
// analysis, not an account of this service).
type OrgUser struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;index"`
	UserPrincipalName string    `gorm:"type:varchar(255);not null"`
	DisplayName       string    `gorm:"type:varchar(255)"`
	AccountEnabled    bool      `gorm:"type:boolean;not null;default:true"`

	Tenant Tenant `gorm:"foreignKey:TenantID"`
}

// LicenseAssignment is the current SKU held by an organization user.
// At most one row per user; absence means the user is unlicensed.
type LicenseAssignment struct {
	ID         uint      `gorm:"primaryKey"`
	OrgUserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SkuID      string    `gorm:"type:varchar(64);not null"`
	AssignedAt time.Time `gorm:"not null"`

	OrgUser OrgUser `gorm:"foreignKey:OrgUserID"`
}
