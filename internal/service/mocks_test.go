package service

import (
	"context"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"

	"github.com/stretchr/testify/mock"
)

type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) List(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Team)
	return list, args.Error(1)
}

func (m *MockTeamStore) FindByID(ctx context.Context, id string) (*model.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamStore) FindByHandle(ctx context.Context, handle string) (*model.Team, error) {
	args := m.Called(ctx, handle)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamStore) FindByInviteCode(ctx context.Context, code string) (*model.Team, error) {
	args := m.Called(ctx, code)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamStore) CreateWithProfile(ctx context.Context, userID, name, handle string, fullName *string) (*model.Team, error) {
	args := m.Called(ctx, userID, name, handle, fullName)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamStore) JoinWithProfile(ctx context.Context, userID, teamID, code string, fullName *string) (*model.Team, error) {
	args := m.Called(ctx, userID, teamID, code, fullName)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamStore) RegenerateInviteCode(ctx context.Context, teamID string) (string, error) {
	args := m.Called(ctx, teamID)
	return args.String(0), args.Error(1)
}

func (m *MockTeamStore) CountMembers(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, teamID, authorID, content string) (*model.Post, error) {
	args := m.Called(ctx, teamID, authorID, content)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockPostStore) ListAll(ctx context.Context, limit int) ([]model.Post, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

func (m *MockPostStore) ListByTeam(ctx context.Context, teamID string, limit int) ([]model.Post, error) {
	args := m.Called(ctx, teamID, limit)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

func (m *MockPostStore) ListFollowingFeed(ctx context.Context, teamID string, limit int) ([]model.Post, error) {
	args := m.Called(ctx, teamID, limit)
	list, _ := args.Get(0).([]model.Post)
	return list, args.Error(1)
}

type MockFollowStore struct {
	mock.Mock
}

func (m *MockFollowStore) Follow(ctx context.Context, followerTeamID, followingTeamID string) error {
	return m.Called(ctx, followerTeamID, followingTeamID).Error(0)
}

func (m *MockFollowStore) Unfollow(ctx context.Context, followerTeamID, followingTeamID string) (bool, error) {
	args := m.Called(ctx, followerTeamID, followingTeamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) IsFollowing(ctx context.Context, followerTeamID, followingTeamID string) (bool, error) {
	args := m.Called(ctx, followerTeamID, followingTeamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) CountFollowers(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowStore) CountFollowing(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserStore) FindOrCreateOAuth(ctx context.Context, provider, subject, email string) (*model.User, error) {
	args := m.Called(ctx, provider, subject, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Add(ctx context.Context, sessionID, userID string) error {
	return m.Called(ctx, sessionID, userID).Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Extend(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockPageCache struct {
	mock.Mock
}

func (m *MockPageCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockPageCache) Set(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

func (m *MockPageCache) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*pkg.OAuthIdentity, error) {
	args := m.Called(ctx, code)
	ident, _ := args.Get(0).(*pkg.OAuthIdentity)
	return ident, args.Error(1)
}

type MockOutboxStore struct {
	mock.Mock
}

func (m *MockOutboxStore) ListPending(ctx context.Context, batch int) ([]model.SocialOutbox, error) {
	args := m.Called(ctx, batch)
	rows, _ := args.Get(0).([]model.SocialOutbox)
	return rows, args.Error(1)
}

func (m *MockOutboxStore) MarkSent(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxStore) MarkFailed(ctx context.Context, id uint64, maxRetry int) error {
	return m.Called(ctx, id, maxRetry).Error(0)
}

func strPtr(s string) *string { return &s }
