package service

import (
	"context"
	"errors"
	"strings"

	"Team_Social/internal/model"
	"Team_Social/internal/repository"
	rdb "Team_Social/internal/repository/redis"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const teamPagePostLimit = 50

type TeamService struct {
	teams    TeamStore
	profiles ProfileStore
	posts    PostStore
	follows  FollowStore
	cache    PageCache
	log      *zap.Logger
}

func NewTeamService(teams TeamStore, profiles ProfileStore, posts PostStore, follows FollowStore, cache PageCache, log *zap.Logger) *TeamService {
	return &TeamService{
		teams:    teams,
		profiles: profiles,
		posts:    posts,
		follows:  follows,
		cache:    cache,
		log:      log,
	}
}

type CreateTeamInput struct {
	TeamName string
	Handle   string
	FullName string
}

type JoinTeamInput struct {
	TeamID     string
	InviteCode string
	FullName   string
}

type TeamStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Members   int64 `json:"members"`
}

// TeamPage 团队主页的读模型
type TeamPage struct {
	Team        model.Team
	Posts       []model.Post
	Stats       TeamStats
	IsOwnTeam   bool
	IsFollowing bool
	SignedIn    bool
}

// NavState 导航栏：有团队显示团队链接，否则显示 "Set up team"
type NavState struct {
	SignedIn   bool
	HasTeam    bool
	TeamName   string
	TeamHandle string
}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	var list []model.Team
	if hit, _ := s.cache.Get(ctx, rdb.TeamsKey, &list); hit {
		return list, nil
	}
	list, err := s.teams.List(ctx)
	if err != nil {
		return nil, classify(err)
	}
	s.fill(ctx, rdb.TeamsKey, list)
	return list, nil
}

// CreateTeam 返回调用者所在团队；已有团队时 existing=true 且不做任何写入
func (s *TeamService) CreateTeam(ctx context.Context, userID string, in CreateTeamInput) (team *model.Team, existing bool, err error) {
	if userID == "" {
		return nil, false, authRequired("You must be signed in to create a team")
	}
	if team, err = s.currentTeam(ctx, userID); err != nil || team != nil {
		return team, team != nil, err
	}

	name := strings.TrimSpace(in.TeamName)
	if name == "" {
		return nil, false, validationError("Team name is required")
	}
	handle, err := resolveHandle(name, in.Handle)
	if err != nil {
		return nil, false, err
	}

	team, err = s.teams.CreateWithProfile(ctx, userID, name, handle, optional(in.FullName))
	if err != nil {
		return nil, false, classify(err)
	}
	s.invalidate(ctx, rdb.TeamsKey)
	s.log.Info("team created",
		zap.String("team_id", team.ID),
		zap.String("handle", team.Handle),
		zap.String("user_id", userID))
	return team, false, nil
}

// JoinTeam 未指定团队时按邀请码查找；事务内会再校验一次邀请码
func (s *TeamService) JoinTeam(ctx context.Context, userID string, in JoinTeamInput) (team *model.Team, existing bool, err error) {
	if userID == "" {
		return nil, false, authRequired("You must be signed in to join a team")
	}
	if team, err = s.currentTeam(ctx, userID); err != nil || team != nil {
		return team, team != nil, err
	}

	code := strings.TrimSpace(in.InviteCode)
	if code == "" {
		return nil, false, validationError("Invite code is required")
	}
	teamID := strings.TrimSpace(in.TeamID)
	if teamID == "" {
		found, err := s.teams.FindByInviteCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, false, validationError("Invalid invite code")
			}
			return nil, false, classify(err)
		}
		teamID = found.ID
	}

	team, err = s.teams.JoinWithProfile(ctx, userID, teamID, code, optional(in.FullName))
	if err != nil {
		return nil, false, classify(err)
	}
	s.invalidate(ctx, rdb.TeamStatsKey(team.ID))
	s.log.Info("member joined", zap.String("team_id", team.ID), zap.String("user_id", userID))
	return team, false, nil
}

// RegenerateInviteCode 只有团队成员可以轮换邀请码
func (s *TeamService) RegenerateInviteCode(ctx context.Context, userID, teamID string) (string, error) {
	if userID == "" {
		return "", authRequired("You must be signed in")
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", classify(err)
	}
	if profile == nil || profile.TeamID != teamID {
		return "", newError(KindForbidden, "You can only regenerate codes for your own team", nil)
	}
	code, err := s.teams.RegenerateInviteCode(ctx, teamID)
	if err != nil {
		return "", classify(err)
	}
	if profile.Team != nil {
		s.invalidate(ctx, rdb.TeamHandleKey(profile.Team.Handle))
	}
	s.log.Info("invite code regenerated", zap.String("team_id", teamID), zap.String("user_id", userID))
	return code, nil
}

// Team 按 handle 取团队，带缓存
func (s *TeamService) Team(ctx context.Context, handle string) (*model.Team, error) {
	key := rdb.TeamHandleKey(handle)
	var team model.Team
	if hit, _ := s.cache.Get(ctx, key, &team); hit {
		return &team, nil
	}
	t, err := s.teams.FindByHandle(ctx, handle)
	if err != nil {
		return nil, classify(err)
	}
	s.fill(ctx, key, t)
	return t, nil
}

func (s *TeamService) TeamPage(ctx context.Context, viewerID, handle string) (*TeamPage, error) {
	team, err := s.Team(ctx, handle)
	if err != nil {
		return nil, err
	}
	page := &TeamPage{Team: *team, SignedIn: viewerID != ""}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.teamPosts(gctx, team.ID)
		page.Posts = posts
		return err
	})
	g.Go(func() error {
		stats, err := s.stats(gctx, team.ID)
		page.Stats = stats
		return err
	})
	if viewerID != "" {
		g.Go(func() error {
			profile, err := s.profiles.FindByUserID(gctx, viewerID)
			if err != nil || profile == nil {
				return err
			}
			if profile.TeamID == team.ID {
				page.IsOwnTeam = true
				return nil
			}
			page.IsFollowing, err = s.follows.IsFollowing(gctx, profile.TeamID, team.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}
	if !page.IsOwnTeam {
		page.Team.InviteCode = ""
	}
	return page, nil
}

func (s *TeamService) Navbar(ctx context.Context, userID string) (NavState, error) {
	if userID == "" {
		return NavState{}, nil
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return NavState{SignedIn: true}, classify(err)
	}
	return NavFor(profile), nil
}

// NavFor 已登录用户的导航栏；profile 为 nil 表示还没有团队
func NavFor(profile *model.Profile) NavState {
	nav := NavState{SignedIn: true}
	if profile != nil && profile.Team != nil {
		nav.HasTeam = true
		nav.TeamName = profile.Team.Name
		nav.TeamHandle = profile.Team.Handle
	}
	return nav
}

func (s *TeamService) teamPosts(ctx context.Context, teamID string) ([]model.Post, error) {
	key := rdb.TeamFeedKey(teamID)
	var posts []model.Post
	if hit, _ := s.cache.Get(ctx, key, &posts); hit {
		return posts, nil
	}
	posts, err := s.posts.ListByTeam(ctx, teamID, teamPagePostLimit)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, key, posts)
	return posts, nil
}

// stats 三个计数并发查询
func (s *TeamService) stats(ctx context.Context, teamID string) (TeamStats, error) {
	key := rdb.TeamStatsKey(teamID)
	var st TeamStats
	if hit, _ := s.cache.Get(ctx, key, &st); hit {
		return st, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Followers, err = s.follows.CountFollowers(gctx, teamID)
		return err
	})
	g.Go(func() (err error) {
		st.Following, err = s.follows.CountFollowing(gctx, teamID)
		return err
	})
	g.Go(func() (err error) {
		st.Members, err = s.teams.CountMembers(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TeamStats{}, err
	}
	s.fill(ctx, key, st)
	return st, nil
}

func (s *TeamService) currentTeam(ctx context.Context, userID string) (*model.Team, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	if profile == nil {
		return nil, nil
	}
	if profile.Team != nil {
		return profile.Team, nil
	}
	team, err := s.teams.FindByID(ctx, profile.TeamID)
	if err != nil {
		return nil, classify(err)
	}
	return team, nil
}

func (s *TeamService) fill(ctx context.Context, key string, v any) {
	fillCache(ctx, s.cache, s.log, key, v)
}

func (s *TeamService) invalidate(ctx context.Context, keys ...string) {
	invalidateCache(ctx, s.cache, s.log, keys...)
}
