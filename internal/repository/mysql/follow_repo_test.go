package mysql

import (
	"context"
	"testing"

	"Team_Social/internal/model"
	"Team_Social/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_RoundTripLeavesCountsUnchanged(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	teams := NewTeamRepository(db)
	follows := &FollowRepository{DB: db}

	a, err := teams.CreateWithProfile(ctx, "a", "A", "a", nil)
	require.NoError(t, err)
	b, err := teams.CreateWithProfile(ctx, "b", "B", "b", nil)
	require.NoError(t, err)

	followersBefore, _ := follows.CountFollowers(ctx, b.ID)
	followingBefore, _ := follows.CountFollowing(ctx, a.ID)

	require.NoError(t, follows.Follow(ctx, a.ID, b.ID))
	ok, err := follows.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	n, _ := follows.CountFollowers(ctx, b.ID)
	assert.Equal(t, followersBefore+1, n)

	assert.ErrorIs(t, follows.Follow(ctx, a.ID, b.ID), repository.ErrDuplicateFollow)

	changed, err := follows.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	followersAfter, _ := follows.CountFollowers(ctx, b.ID)
	followingAfter, _ := follows.CountFollowing(ctx, a.ID)
	assert.Equal(t, followersBefore, followersAfter)
	assert.Equal(t, followingBefore, followingAfter)

	// 重复取关是空操作，不写事件
	changed, err = follows.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	var events []model.SocialOutbox
	require.NoError(t, db.Where("event_type IN ?", []string{model.EventFollow, model.EventUnfollow}).Find(&events).Error)
	assert.Len(t, events, 2)
}

func TestFollowRepository_SelfFollowWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	follows := &FollowRepository{DB: db}

	err := follows.Follow(ctx, "team-a", "team-a")
	assert.ErrorIs(t, err, repository.ErrSelfFollow)

	var n int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&n).Error)
	assert.Zero(t, n)
}
