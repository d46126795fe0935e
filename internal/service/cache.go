package service

import (
	"context"

	"go.uber.org/zap"
)

// 缓存只是加速，读写失败都不影响请求结果

func fillCache(ctx context.Context, c PageCache, log *zap.Logger, key string, v any) {
	if err := c.Set(ctx, key, v); err != nil {
		log.Warn("page cache fill failed", zap.String("key", key), zap.Error(err))
	}
}

func invalidateCache(ctx context.Context, c PageCache, log *zap.Logger, keys ...string) {
	if err := c.Invalidate(ctx, keys...); err != nil {
		log.Warn("page cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// NopCache 不缓存，测试与无 Redis 的本地调试使用
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any) error         { return nil }
func (NopCache) Invalidate(context.Context, ...string) error    { return nil }
