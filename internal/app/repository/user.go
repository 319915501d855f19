package repository

import (
	"context"
	"errors"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/role"

	"gorm.io/gorm"
)

// Service account methods

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(ctx context.Context, login string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(ctx context.Context, login, password, fullName string, userRole role.Role) (*ds.User, error) {
	user := ds.User{
		Login:    login,
		Password: password,
		FullName: fullName,
		Role:     userRole,
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}
