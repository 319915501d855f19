package repository

import (
	"context"
	"errors"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant read views

func (r *Repository) GetTenants(ctx context.Context) ([]ds.Tenant, error) {
	var tenants []ds.Tenant
	err := r.db.WithContext(ctx).Order("created_at").Find(&tenants).Error
	return tenants, err
}

func (r *Repository) GetTenantByID(ctx context.Context, id uuid.UUID) (*ds.Tenant, error) {
	var tenant ds.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}
