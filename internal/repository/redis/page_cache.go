package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PageCacheTTL        = 30 * time.Second
	DoubleDeleteDelay   = 500 * time.Millisecond
	FeedKey             = "page:feed:all"
	TeamsKey            = "page:teams"
	teamFeedKeyPrefix   = "page:feed:team:"
	teamStatsKeyPrefix  = "page:stats:team:"
	teamHandleKeyPrefix = "page:team:handle:"
)

func TeamFeedKey(teamID string) string   { return teamFeedKeyPrefix + teamID }
func TeamStatsKey(teamID string) string  { return teamStatsKeyPrefix + teamID }
func TeamHandleKey(handle string) string { return teamHandleKeyPrefix + handle }

// PageCache 页面读模型缓存；写路径成功后调用 Invalidate
type PageCache struct {
	RDB   *redis.Client
	TTL   time.Duration
	Delay time.Duration
}

func NewPageCache(rdb *redis.Client) *PageCache {
	return &PageCache{RDB: rdb, TTL: PageCacheTTL, Delay: DoubleDeleteDelay}
}

// Get 命中返回 true；反序列化失败视为未命中
func (c *PageCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *PageCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, key, b, c.TTL).Err()
}

// Invalidate 立即删除，并在 Delay 后异步再删一次，抵消并发回填窗口
func (c *PageCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.RDB.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if c.Delay > 0 {
		go func() {
			t := time.NewTimer(c.Delay)
			defer t.Stop()
			<-t.C
			_ = c.RDB.Del(context.Background(), keys...).Err()
		}()
	}
	return nil
}
