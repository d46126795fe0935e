package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team 发帖与关注的身份单位
type Team struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name       string    `gorm:"size:100;not null;index" json:"name"`
	Handle     string    `gorm:"uniqueIndex;size:64;not null" json:"handle"`
	InviteCode string    `gorm:"uniqueIndex;size:16;not null" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Profile 用户与团队的绑定，主键即用户ID，保证一个用户只属于一个团队
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TeamID    string    `gorm:"type:varchar(36);not null;index" json:"team_id"`
	Team      *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	FullName  *string   `gorm:"size:100" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
