package mysql

import (
	"context"

	"Team_Social/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// Create 帖子与 post_created 事件同事务写入
func (r *PostRepository) Create(ctx context.Context, teamID, authorID, content string) (*model.Post, error) {
	post := &model.Post{TeamID: teamID, AuthorID: &authorID, Content: content}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostCreated, teamID, map[string]any{
			"post_id":   post.ID,
			"team_id":   teamID,
			"author_id": authorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListAll 全站时间线，最新在前
func (r *PostRepository) ListAll(ctx context.Context, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.withTeam(ctx).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit)).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.withTeam(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit)).
		Find(&list).Error
	return list, err
}

// ListFollowingFeed 自己团队 + 已关注团队的帖子
func (r *PostRepository) ListFollowingFeed(ctx context.Context, teamID string, limit int) ([]model.Post, error) {
	following := r.DB.Model(&model.Follow{}).
		Select("following_team_id").
		Where("follower_team_id = ?", teamID)
	var list []model.Post
	err := r.withTeam(ctx).
		Where("team_id = ? OR team_id IN (?)", teamID, following).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit)).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) withTeam(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("Team", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "handle")
	})
}
