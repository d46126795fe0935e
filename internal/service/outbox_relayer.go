package service

import (
	"context"
	"time"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const relayLockName = "outbox:relay"

type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer outbox表相关服务
type OutboxRelayer struct {
	repo      OutboxStore
	lock      Locker
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(repo OutboxStore, lock Locker, sender Sender, log *zap.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		lock:      lock,
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
		log:       log,
	}
}

// Run outbox启动器，ctx 取消后退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

// tick 抢到锁的实例才投递
func (r *OutboxRelayer) tick(ctx context.Context) {
	if r.lock != nil {
		token := uuid.NewString()
		ok, err := r.lock.Acquire(ctx, relayLockName, token)
		if err != nil || !ok {
			return
		}
		defer func() { _ = r.lock.Release(context.Background(), relayLockName, token) }()
	}
	r.drainOnce(ctx)
}

// drainOnce 从数据库读取事件交给 sender，返回成功投递条数
func (r *OutboxRelayer) drainOnce(ctx context.Context) int {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed",
				zap.Uint64("id", ob.ID),
				zap.String("event", ob.EventType),
				zap.Int("retry", ob.Retry),
				zap.Error(err))
			if err := r.repo.MarkFailed(ctx, ob.ID, r.maxRetry); err != nil {
				r.log.Error("outbox mark failed", zap.Uint64("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, ob.ID); err != nil {
			r.log.Error("outbox mark sent", zap.Uint64("id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// LogSender 未配置 Kafka 时只打日志
func LogSender(log *zap.Logger) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		log.Info("outbox event",
			zap.String("event", ob.EventType),
			zap.String("team_id", ob.TeamID),
			zap.String("payload", ob.Payload))
		return nil
	}
}

// KafkaSender 以 team_id 为 key 投递，保证同一团队事件有序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		return p.Send(ctx, ob.TeamID, []byte(ob.Payload), map[string]string{"event_type": ob.EventType})
	}
}
