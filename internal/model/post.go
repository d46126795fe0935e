package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxPostLength = 500

// Post 创建后不可修改；作者离开后 author_id 置空
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TeamID    string    `gorm:"type:varchar(36);not null;index:idx_team_time,priority:1" json:"team_id"`
	Team      *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	AuthorID  *string   `gorm:"type:varchar(36);index" json:"author_id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_team_time,priority:2,sort:desc;index:idx_post_time,sort:desc" json:"created_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
