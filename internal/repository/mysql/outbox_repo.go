package mysql

import (
	"context"
	"encoding/json"

	"Team_Social/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// 插入outbox事件表，必须与业务写入共用同一个 tx
func insertOutbox(tx *gorm.DB, event, teamID string, payload map[string]any) error {
	payload["event"] = event
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&model.SocialOutbox{
		EventType: event,
		TeamID:    teamID,
		Payload:   string(b),
		Status:    model.OutboxPending,
	}).Error
}

// ListPending 按 id 顺序取待投递事件
func (r *OutboxRepository) ListPending(ctx context.Context, batch int) ([]model.SocialOutbox, error) {
	var rows []model.SocialOutbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id ASC").
		Limit(batch).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).
		Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// MarkFailed 失败累加重试次数，达到上限后置为失败，不再投递
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.SocialOutbox{}).
			Where("id = ?", id).
			UpdateColumn("retry", gorm.Expr("retry + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.SocialOutbox{}).
			Where("id = ? AND retry >= ?", id, maxRetry).
			Update("status", model.OutboxFailed).Error
	})
}
