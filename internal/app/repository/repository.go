package repository

import (
	"errors"
	"fmt"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Sentinel errors mapped to transport codes by the handlers.
var (
	ErrNotFound   = errors.New("record not found")
	ErrNotPending = errors.New("recommendation is no longer pending")
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&ds.User{},
		&ds.Tenant{},
		&ds.OrgUser{},
		&ds.LicenseAssignment{},
		&ds.UsageRecord{},
		&ds.PriceQuotation{},
		&ds.Analysis{},
		&ds.Recommendation{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}
