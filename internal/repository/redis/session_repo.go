package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrSessionDeleted   = errors.New("session delete failed")
)

const SessionKeyPrefix = "login:session"

// SessionRepository 会话登记表：session_id -> user_id，登出即删除
type SessionRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

func (r *SessionRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", SessionKeyPrefix, sessionID)
}

func (r *SessionRepository) Add(ctx context.Context, sessionID, userID string) error {
	if err := r.RDB.Set(ctx, r.key(sessionID), userID, r.TTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := r.RDB.Get(ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return userID, nil
}

// Extend 有访问就续期
func (r *SessionRepository) Extend(ctx context.Context, sessionID string) error {
	if err := r.RDB.Expire(ctx, r.key(sessionID), r.TTL).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.RDB.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return ErrSessionDeleted
	}
	return nil
}
