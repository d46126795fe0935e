package mysql

import (
	"context"
	"errors"

	"Team_Social/internal/model"
	"Team_Social/internal/repository"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Follow 新建关注边；自关注在落库前拒绝，重复关注返回 ErrDuplicateFollow
func (r *FollowRepository) Follow(ctx context.Context, followerTeamID, followingTeamID string) error {
	if followerTeamID == followingTeamID {
		return repository.ErrSelfFollow
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Follow{
			FollowerTeamID:  followerTeamID,
			FollowingTeamID: followingTeamID,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repository.ErrDuplicateFollow
			}
			return err
		}
		return insertOutbox(tx, model.EventFollow, followerTeamID, map[string]any{
			"follower_team_id":  followerTeamID,
			"following_team_id": followingTeamID,
		})
	})
}

// Unfollow 幂等删除；只有真的删掉一行才写 outbox，返回 changed
func (r *FollowRepository) Unfollow(ctx context.Context, followerTeamID, followingTeamID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_team_id = ? AND following_team_id = ?", followerTeamID, followingTeamID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, model.EventUnfollow, followerTeamID, map[string]any{
			"follower_team_id":  followerTeamID,
			"following_team_id": followingTeamID,
		})
	})
	return changed, err
}

// IsFollowing 判断是否关注
func (r *FollowRepository) IsFollowing(ctx context.Context, followerTeamID, followingTeamID string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_team_id = ? AND following_team_id = ?", followerTeamID, followingTeamID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountFollowers 关注该团队的团队数
func (r *FollowRepository) CountFollowers(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("following_team_id = ?", teamID).
		Count(&n).Error
	return n, err
}

// CountFollowing 该团队关注的团队数
func (r *FollowRepository) CountFollowing(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_team_id = ?", teamID).
		Count(&n).Error
	return n, err
}
