package model

import "time"

// Follow 团队 -> 团队 的有向关注边，(follower, following) 唯一
type Follow struct {
	FollowerTeamID  string    `gorm:"primaryKey;type:varchar(36)" json:"follower_team_id"`
	FollowingTeamID string    `gorm:"primaryKey;type:varchar(36);index;check:chk_follows_not_self,follower_team_id <> following_team_id" json:"following_team_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follows"
}

const (
	EventTeamCreated  = "team_created"
	EventMemberJoined = "member_joined"
	EventPostCreated  = "post_created"
	EventFollow       = "follow"
	EventUnfollow     = "unfollow"
)

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// SocialOutbox 领域事件发件箱，与业务写入同一事务落库
type SocialOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	TeamID    string `gorm:"type:varchar(36);not null;index"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;index;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SocialOutbox) TableName() string { return "social_outbox" }
