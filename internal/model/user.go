package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 身份提供方的账号表；OAuth 用户没有密码
type User struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)"`
	Email         string  `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  *string `gorm:"size:255"`
	OAuthProvider *string `gorm:"column:oauth_provider;size:32;uniqueIndex:uk_oauth_identity"`
	OAuthSubject  *string `gorm:"column:oauth_subject;size:255;uniqueIndex:uk_oauth_identity"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
