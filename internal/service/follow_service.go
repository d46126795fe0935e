package service

import (
	"context"
	"strings"

	rdb "Team_Social/internal/repository/redis"

	"go.uber.org/zap"
)

type FollowService struct {
	follows  FollowStore
	profiles ProfileStore
	cache    PageCache
	log      *zap.Logger
}

func NewFollowService(follows FollowStore, profiles ProfileStore, cache PageCache, log *zap.Logger) *FollowService {
	return &FollowService{follows: follows, profiles: profiles, cache: cache, log: log}
}

// Follow 调用者所在团队关注目标团队
func (s *FollowService) Follow(ctx context.Context, userID, targetTeamID string) error {
	followerTeamID, err := s.callerTeam(ctx, userID, targetTeamID)
	if err != nil {
		return err
	}
	if followerTeamID == targetTeamID {
		return newError(KindSelfRef, "Cannot follow your own team", nil)
	}
	if err := s.follows.Follow(ctx, followerTeamID, targetTeamID); err != nil {
		return classify(err)
	}
	s.invalidate(ctx, followerTeamID, targetTeamID)
	return nil
}

// Unfollow 幂等：未关注时直接成功
func (s *FollowService) Unfollow(ctx context.Context, userID, targetTeamID string) error {
	followerTeamID, err := s.callerTeam(ctx, userID, targetTeamID)
	if err != nil {
		return err
	}
	changed, err := s.follows.Unfollow(ctx, followerTeamID, targetTeamID)
	if err != nil {
		return classify(err)
	}
	if changed {
		s.invalidate(ctx, followerTeamID, targetTeamID)
	}
	return nil
}

func (s *FollowService) callerTeam(ctx context.Context, userID, targetTeamID string) (string, error) {
	if userID == "" {
		return "", authRequired("You must be signed in")
	}
	if strings.TrimSpace(targetTeamID) == "" {
		return "", validationError("Team is required")
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", classify(err)
	}
	if profile == nil {
		return "", newError(KindNotFound, "No team found", nil)
	}
	return profile.TeamID, nil
}

func (s *FollowService) invalidate(ctx context.Context, followerTeamID, followingTeamID string) {
	invalidateCache(ctx, s.cache, s.log, rdb.TeamStatsKey(followerTeamID), rdb.TeamStatsKey(followingTeamID))
}
