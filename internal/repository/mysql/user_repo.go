package mysql

import (
	"context"
	"errors"

	"Team_Social/internal/model"
	"Team_Social/internal/repository"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindOrCreateOAuth 先按 (provider, subject) 找；再按邮箱关联已有账号；都没有则新建
func (r *UserRepository) FindOrCreateOAuth(ctx context.Context, provider, subject, email string) (*model.User, error) {
	var u model.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("oauth_provider = ? AND oauth_subject = ?", provider, subject).First(&u).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		err = tx.Where("email = ?", email).First(&u).Error
		switch {
		case err == nil:
			// 只关联尚未绑定第三方身份的账号
			if u.OAuthProvider != nil || u.OAuthSubject != nil {
				return repository.ErrIdentityConflict
			}
			u.OAuthProvider, u.OAuthSubject = &provider, &subject
			return tx.Model(&u).Select("oauth_provider", "oauth_subject").Updates(&u).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = model.User{Email: email, OAuthProvider: &provider, OAuthSubject: &subject}
			return tx.Create(&u).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
