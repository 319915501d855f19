package repository

import (
	"context"
	"errors"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory, assignment and usage views consumed by the orchestrator.

// ListOrgUsers returns every member of the tenant's directory.
func (r *Repository) ListOrgUsers(ctx context.Context, tenantID uuid.UUID) ([]ds.OrgUser, error) {
	var users []ds.OrgUser
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("user_principal_name").
		Find(&users).Error
	return users, err
}

// CurrentSku returns the SKU currently assigned to the user, or nil for
// an unlicensed user.
func (r *Repository) CurrentSku(ctx context.Context, orgUserID uuid.UUID) (*string, error) {
	var assignment ds.LicenseAssignment
	err := r.db.WithContext(ctx).
		Where("org_user_id = ?", orgUserID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no license is not an error
		}
		return nil, err
	}
	return &assignment.SkuID, nil
}

// LatestUsage returns the usage record with the latest period end, or
// nil when the user has never synced usage.
func (r *Repository) LatestUsage(ctx context.Context, orgUserID uuid.UUID) (*ds.UsageRecord, error) {
	var rec ds.UsageRecord
	err := r.db.WithContext(ctx).
		Where("org_user_id = ?", orgUserID).
		Order("period_end DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // missing usage data means zero usage
		}
		return nil, err
	}
	return &rec, nil
}
