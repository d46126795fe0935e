package service

import (
	"context"
	"errors"
	"strings"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"
	"Team_Social/internal/repository"
	rdb "Team_Social/internal/repository/redis"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

var validate = validator.New()

// Session 当前请求的登录态；Tokens 非空表示本次刚签发或刷新，需要回写 cookie
type Session struct {
	ID     string
	UserID string
	Tokens *pkg.Pair
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	profiles ProfileStore
	tokens   *pkg.TokenIssuer
	oauth    OAuthProvider
	log      *zap.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, profiles ProfileStore, tokens *pkg.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		profiles: profiles,
		tokens:   tokens,
		log:      log,
	}
}

// WithOAuth 启用第三方登录
func (s *AuthService) WithOAuth(p OAuthProvider) *AuthService {
	s.oauth = p
	return s
}

func (s *AuthService) OAuthEnabled() bool { return s.oauth != nil }

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, validationError("Please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("Password should be at least 6 characters")
	}
	if len(password) > maxPasswordLength {
		return nil, validationError("Password cannot exceed 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, classify(err)
	}
	h := string(hash)
	user := &model.User{Email: email, PasswordHash: &h}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, classify(err)
	}
	s.log.Info("user signed up", zap.String("user_id", user.ID))
	return s.startSession(ctx, user.ID)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authRequired("Invalid login credentials")
		}
		return nil, classify(err)
	}
	if user.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, authRequired("Invalid login credentials")
	}
	return s.startSession(ctx, user.ID)
}

// SignOut 删除会话登记，旧 token 随即失效
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return classify(err)
	}
	return nil
}

// Landing 登录后的落地页：没有团队先去 onboarding
func (s *AuthService) Landing(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", classify(err)
	}
	if profile == nil {
		return "/onboarding", nil
	}
	return "/", nil
}

func (s *AuthService) BeginOAuth(state string) (string, error) {
	if s.oauth == nil {
		return "", newError(KindNotFound, "Google sign-in is not configured", nil)
	}
	return s.oauth.AuthCodeURL(state), nil
}

func (s *AuthService) CompleteOAuth(ctx context.Context, code string) (*Session, error) {
	if s.oauth == nil {
		return nil, newError(KindNotFound, "Google sign-in is not configured", nil)
	}
	if code == "" {
		return nil, validationError("Missing authorization code")
	}
	ident, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, newError(KindAuthRequired, "Could not complete Google sign-in", err)
	}
	user, err := s.users.FindOrCreateOAuth(ctx, ident.Provider, ident.Subject, strings.ToLower(ident.Email))
	if err != nil {
		return nil, classify(err)
	}
	s.log.Info("oauth sign-in", zap.String("user_id", user.ID), zap.String("provider", ident.Provider))
	return s.startSession(ctx, user.ID)
}

// Resolve 从 cookie 中的 token 恢复登录态；无登录态返回 (nil, nil)
// access 过期但 refresh 有效时重新签发一对 token，会话ID不变
func (s *AuthService) Resolve(ctx context.Context, access, refresh string) (*Session, error) {
	if access != "" {
		if claims, err := s.tokens.ParseAccess(access); err == nil {
			return s.confirm(ctx, claims, false)
		}
	}
	if refresh == "" {
		return nil, nil
	}
	claims, err := s.tokens.ParseRefresh(refresh)
	if err != nil {
		return nil, nil
	}
	return s.confirm(ctx, claims, true)
}

func (s *AuthService) confirm(ctx context.Context, claims *pkg.Claims, reissue bool) (*Session, error) {
	userID, err := s.sessions.Get(ctx, claims.ID)
	if errors.Is(err, rdb.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, nil
	}
	if err := s.sessions.Extend(ctx, claims.ID); err != nil {
		s.log.Warn("extend session failed", zap.String("session_id", claims.ID), zap.Error(err))
	}
	sess := &Session{ID: claims.ID, UserID: claims.UserID}
	if reissue {
		if sess.Tokens, err = s.tokens.GeneratePair(claims.UserID, claims.ID); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (*Session, error) {
	sid := uuid.NewString()
	pair, err := s.tokens.GeneratePair(userID, sid)
	if err != nil {
		return nil, classify(err)
	}
	if err := s.sessions.Add(ctx, sid, userID); err != nil {
		return nil, classify(err)
	}
	return &Session{ID: sid, UserID: userID, Tokens: pair}, nil
}
