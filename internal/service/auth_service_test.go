package service

import (
	"context"
	"errors"
	"testing"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"
	"Team_Social/internal/repository"
	rdb "Team_Social/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	users    *MockUserStore
	sessions *MockSessionStore
	profiles *MockProfileStore
	tokens   *pkg.TokenIssuer
	svc      *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(MockUserStore),
		sessions: new(MockSessionStore),
		profiles: new(MockProfileStore),
		tokens:   pkg.NewTokenIssuer("access-test", "refresh-test"),
	}
	f.svc = NewAuthService(f.users, f.sessions, f.profiles, f.tokens, zap.NewNop())
	return f
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "ada@example.com" && u.PasswordHash != nil &&
			bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("secret1")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = "user-1"
	}).Return(nil)
	f.sessions.On("Add", ctx, mock.AnythingOfType("string"), "user-1").Return(nil)

	sess, err := f.svc.SignUp(ctx, " Ada@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	require.NotNil(t, sess.Tokens)

	claims, err := f.tokens.ParseAccess(sess.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, claims.ID)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	tests := []struct {
		email, password, msg string
	}{
		{"", "secret1", "Email and password are required"},
		{"ada@example.com", "", "Email and password are required"},
		{"not-an-email", "secret1", "Please enter a valid email address"},
		{"ada@example.com", "12345", "Password should be at least 6 characters"},
	}
	for _, tt := range tests {
		_, err := f.svc.SignUp(ctx, tt.email, tt.password)
		require.Error(t, err)
		assert.Equal(t, tt.msg, err.Error())
	}

	f.users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)
	_, err := f.svc.SignUp(ctx, "ada@example.com", "secret1")
	assert.Equal(t, KindConflict, KindOf(err))
	f.sessions.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	f.users.On("FindByEmail", ctx, "ada@example.com").Return(&model.User{ID: "user-1", PasswordHash: &h}, nil)
	f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)
	f.sessions.On("Add", ctx, mock.Anything, "user-1").Return(nil)

	sess, err := f.svc.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)

	_, err = f.svc.SignIn(ctx, "ada@example.com", "wrong")
	assert.Equal(t, "Invalid login credentials", err.Error())

	_, err = f.svc.SignIn(ctx, "ghost@example.com", "secret1")
	assert.Equal(t, "Invalid login credentials", err.Error())
}

func TestAuthService_Landing(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.profiles.On("FindByUserID", ctx, "new").Return(nil, nil)
	f.profiles.On("FindByUserID", ctx, "member").Return(&model.Profile{TeamID: "team-1"}, nil)

	dest, err := f.svc.Landing(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "/onboarding", dest)

	dest, err = f.svc.Landing(ctx, "member")
	require.NoError(t, err)
	assert.Equal(t, "/", dest)
}

func TestAuthService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no cookies", func(t *testing.T) {
		f := newAuthFixture()
		sess, err := f.svc.Resolve(ctx, "", "")
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("valid access", func(t *testing.T) {
		f := newAuthFixture()
		pair, err := f.tokens.GeneratePair("user-1", "sid-1")
		require.NoError(t, err)
		f.sessions.On("Get", ctx, "sid-1").Return("user-1", nil)
		f.sessions.On("Extend", ctx, "sid-1").Return(nil)

		sess, err := f.svc.Resolve(ctx, pair.AccessToken, pair.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "user-1", sess.UserID)
		assert.Nil(t, sess.Tokens, "no cookie rewrite when access is valid")
	})

	t.Run("garbage access falls back to refresh", func(t *testing.T) {
		f := newAuthFixture()
		pair, err := f.tokens.GeneratePair("user-1", "sid-1")
		require.NoError(t, err)
		f.sessions.On("Get", ctx, "sid-1").Return("user-1", nil)
		f.sessions.On("Extend", ctx, "sid-1").Return(nil)

		sess, err := f.svc.Resolve(ctx, "garbage", pair.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, sess)
		require.NotNil(t, sess.Tokens)
		claims, err := f.tokens.ParseAccess(sess.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "sid-1", claims.ID)
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newAuthFixture()
		pair, err := f.tokens.GeneratePair("user-1", "sid-1")
		require.NoError(t, err)
		f.sessions.On("Get", ctx, "sid-1").Return("", rdb.ErrSessionNotFound)

		sess, err := f.svc.Resolve(ctx, pair.AccessToken, pair.RefreshToken)
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("registry unavailable", func(t *testing.T) {
		f := newAuthFixture()
		pair, err := f.tokens.GeneratePair("user-1", "sid-1")
		require.NoError(t, err)
		f.sessions.On("Get", ctx, "sid-1").Return("", rdb.ErrRedisUnavailable)

		_, err = f.svc.Resolve(ctx, pair.AccessToken, "")
		assert.ErrorIs(t, err, rdb.ErrRedisUnavailable)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.sessions.On("Delete", ctx, "sid-1").Return(nil)

	require.NoError(t, f.svc.SignOut(ctx, "sid-1"))
	require.NoError(t, f.svc.SignOut(ctx, ""))
	f.sessions.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAuthService_OAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		f := newAuthFixture()
		assert.False(t, f.svc.OAuthEnabled())
		_, err := f.svc.BeginOAuth("state")
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("complete", func(t *testing.T) {
		f := newAuthFixture()
		provider := new(MockOAuthProvider)
		f.svc.WithOAuth(provider)

		provider.On("AuthCodeURL", "state-1").Return("https://accounts.example/auth?state=state-1")
		provider.On("Exchange", ctx, "code-1").
			Return(&pkg.OAuthIdentity{Provider: "google", Subject: "sub-1", Email: "Ada@Example.com"}, nil)
		provider.On("Exchange", ctx, "bad").Return(nil, errors.New("invalid_grant"))
		f.users.On("FindOrCreateOAuth", ctx, "google", "sub-1", "ada@example.com").Return(&model.User{ID: "user-1"}, nil)
		f.sessions.On("Add", ctx, mock.Anything, "user-1").Return(nil)

		url, err := f.svc.BeginOAuth("state-1")
		require.NoError(t, err)
		assert.Contains(t, url, "state-1")

		sess, err := f.svc.CompleteOAuth(ctx, "code-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", sess.UserID)

		_, err = f.svc.CompleteOAuth(ctx, "bad")
		assert.Equal(t, KindAuthRequired, KindOf(err))
	})
}
