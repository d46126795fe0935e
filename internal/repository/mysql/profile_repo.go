package mysql

import (
	"context"
	"errors"

	"Team_Social/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

// FindByUserID 没有档案时返回 (nil, nil)，这是正常状态而不是错误
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).Preload("Team").Where("id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
