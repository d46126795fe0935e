package service

import (
	"context"

	"Team_Social/internal/model"
	rdb "Team_Social/internal/repository/redis"

	"go.uber.org/zap"
)

const feedLimit = 50

type FeedScope string

const (
	FeedAll       FeedScope = "all"
	FeedFollowing FeedScope = "following"
)

func ParseFeedScope(s string) FeedScope {
	if s == string(FeedFollowing) {
		return FeedFollowing
	}
	return FeedAll
}

type PostService struct {
	posts    PostStore
	profiles ProfileStore
	cache    PageCache
	log      *zap.Logger
}

func NewPostService(posts PostStore, profiles ProfileStore, cache PageCache, log *zap.Logger) *PostService {
	return &PostService{posts: posts, profiles: profiles, cache: cache, log: log}
}

// CreatePost 内容校验先于任何后端调用
func (s *PostService) CreatePost(ctx context.Context, userID, raw string) (*model.Post, error) {
	content, err := NormalizePostContent(raw)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, authRequired("You must be signed in to post")
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	if profile == nil {
		return nil, newError(KindForbidden, "You must belong to a team to post", nil)
	}

	post, err := s.posts.Create(ctx, profile.TeamID, userID, content)
	if err != nil {
		return nil, classify(err)
	}
	invalidateCache(ctx, s.cache, s.log, rdb.FeedKey, rdb.TeamFeedKey(profile.TeamID))
	s.log.Debug("post created", zap.String("post_id", post.ID), zap.String("team_id", profile.TeamID))
	return post, nil
}

// Feed 全站时间线走缓存；following 视角按团队计算，不缓存
func (s *PostService) Feed(ctx context.Context, userID string, scope FeedScope) ([]model.Post, error) {
	if scope == FeedFollowing && userID != "" {
		profile, err := s.profiles.FindByUserID(ctx, userID)
		if err != nil {
			return nil, classify(err)
		}
		if profile != nil {
			posts, err := s.posts.ListFollowingFeed(ctx, profile.TeamID, feedLimit)
			if err != nil {
				return nil, classify(err)
			}
			return posts, nil
		}
	}

	var posts []model.Post
	if hit, _ := s.cache.Get(ctx, rdb.FeedKey, &posts); hit {
		return posts, nil
	}
	posts, err := s.posts.ListAll(ctx, feedLimit)
	if err != nil {
		return nil, classify(err)
	}
	fillCache(ctx, s.cache, s.log, rdb.FeedKey, posts)
	return posts, nil
}
