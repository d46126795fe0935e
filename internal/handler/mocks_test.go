package handler

import (
	"context"

	"Team_Social/internal/model"
	"Team_Social/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) SignUp(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

func (m *MockAuth) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

func (m *MockAuth) SignOut(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuth) Landing(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) OAuthEnabled() bool { return true }

func (m *MockAuth) BeginOAuth(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) CompleteOAuth(ctx context.Context, code string) (*service.Session, error) {
	args := m.Called(ctx, code)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

type MockTeams struct {
	mock.Mock
}

func (m *MockTeams) ListTeams(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Team)
	return list, args.Error(1)
}

func (m *MockTeams) Team(ctx context.Context, handle string) (*model.Team, error) {
	args := m.Called(ctx, handle)
	t, _ := args.Get(0).(*model.Team)
	return t, args.Error(1)
}

func (m *MockTeams) CreateTeam(ctx context.Context, userID string, in service.CreateTeamInput) (*model.Team, bool, error) {
	args := m.Called(ctx, userID, in)
	t, _ := args.Get(0).(*model.Team)
	return t, args.Bool(1), args.Error(2)
}

func (m *MockTeams) JoinTeam(ctx context.Context, userID string, in service.JoinTeamInput) (*model.Team, bool, error) {
	args := m.Called(ctx, userID, in)
	t, _ := args.Get(0).(*model.Team)
	return t, args.Bool(1), args.Error(2)
}

func (m *MockTeams) RegenerateInviteCode(ctx context.Context, userID, teamID string) (string, error) {
	args := m.Called(ctx, userID, teamID)
	return args.String(0), args.Error(1)
}

func (m *MockTeams) TeamPage(ctx context.Context, viewerID, handle string) (*service.TeamPage, error) {
	args := m.Called(ctx, viewerID, handle)
	p, _ := args.Get(0).(*service.TeamPage)
	return p, args.Error(1)
}

type MockPosts struct {
	mock.Mock
}

func (m *MockPosts) CreatePost(ctx context.Context, userID, content string) (*model.Post, error) {
	args := m.Called(ctx, userID, content)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockPosts) Feed(ctx context.Context, userID string, scope service.FeedScope) ([]model.Post, error) {
	args := m.Called(ctx, userID, scope)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

type MockFollows struct {
	mock.Mock
}

func (m *MockFollows) Follow(ctx context.Context, userID, targetTeamID string) error {
	return m.Called(ctx, userID, targetTeamID).Error(0)
}

func (m *MockFollows) Unfollow(ctx context.Context, userID, targetTeamID string) error {
	return m.Called(ctx, userID, targetTeamID).Error(0)
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Navbar(ctx context.Context, userID string) (service.NavState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.NavState), args.Error(1)
}

// staticNav 固定的导航栏
type staticNav service.NavState

func (n staticNav) Navbar(context.Context, string) (service.NavState, error) {
	return service.NavState(n), nil
}
