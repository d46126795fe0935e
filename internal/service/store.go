package service

import (
	"context"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"
)

// 存储接口由 repository/mysql 与 repository/redis 实现，测试里用 mock 替换

type TeamStore interface {
	List(ctx context.Context) ([]model.Team, error)
	FindByID(ctx context.Context, id string) (*model.Team, error)
	FindByHandle(ctx context.Context, handle string) (*model.Team, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Team, error)
	CreateWithProfile(ctx context.Context, userID, name, handle string, fullName *string) (*model.Team, error)
	JoinWithProfile(ctx context.Context, userID, teamID, code string, fullName *string) (*model.Team, error)
	RegenerateInviteCode(ctx context.Context, teamID string) (string, error)
	CountMembers(ctx context.Context, teamID string) (int64, error)
}

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

type PostStore interface {
	Create(ctx context.Context, teamID, authorID, content string) (*model.Post, error)
	ListAll(ctx context.Context, limit int) ([]model.Post, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]model.Post, error)
	ListFollowingFeed(ctx context.Context, teamID string, limit int) ([]model.Post, error)
}

type FollowStore interface {
	Follow(ctx context.Context, followerTeamID, followingTeamID string) error
	Unfollow(ctx context.Context, followerTeamID, followingTeamID string) (bool, error)
	IsFollowing(ctx context.Context, followerTeamID, followingTeamID string) (bool, error)
	CountFollowers(ctx context.Context, teamID string) (int64, error)
	CountFollowing(ctx context.Context, teamID string) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindOrCreateOAuth(ctx context.Context, provider, subject, email string) (*model.User, error)
}

type SessionStore interface {
	Add(ctx context.Context, sessionID, userID string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Extend(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

// PageCache 页面读模型缓存，失效失败只记日志
type PageCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*pkg.OAuthIdentity, error)
}

type OutboxStore interface {
	ListPending(ctx context.Context, batch int) ([]model.SocialOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64, maxRetry int) error
}

// Locker 多实例下 outbox 只由一个进程投递
type Locker interface {
	Acquire(ctx context.Context, name, token string) (bool, error)
	Release(ctx context.Context, name, token string) error
}
