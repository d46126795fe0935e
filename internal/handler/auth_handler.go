package handler

import (
	"context"
	"net/http"

	"Team_Social/internal/middleware"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	oauthSessionName = "ts_oauth"
	oauthStateKey    = "state"
)

// Authenticator 登录注册相关的服务
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*service.Session, error)
	SignIn(ctx context.Context, email, password string) (*service.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	Landing(ctx context.Context, userID string) (string, error)
	OAuthEnabled() bool
	BeginOAuth(state string) (string, error)
	CompleteOAuth(ctx context.Context, code string) (*service.Session, error)
}

type AuthHandler struct {
	svc     Authenticator
	render  *Renderer
	cookies middleware.CookieOptions
	store   sessions.Store
	log     *zap.Logger
}

func NewAuthHandler(svc Authenticator, render *Renderer, cookies middleware.CookieOptions, store sessions.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, render: render, cookies: cookies, store: store, log: log}
}

// SignUpReq 注册表单
type SignUpReq struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6,max=72"`
}

type SignInReq struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

var signUpMessages = map[string]string{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
	"Email.email":       "Please enter a valid email address",
	"Password.min":      "Password should be at least 6 characters",
	"Password.max":      "Password must be at most 72 bytes",
}

var signInMessages = map[string]string{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "login.html", gin.H{"Title": "Sign in", "OAuth": h.svc.OAuthEnabled()})
}

func (h *AuthHandler) SignUpPage(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up", "OAuth": h.svc.OAuthEnabled()})
}

// SignUp 注册成功后先去 onboarding
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpReq
	if err := c.ShouldBind(&req); err != nil {
		h.authPage(c, "signup.html", http.StatusBadRequest, req.Email, bindMessage(err, signUpMessages))
		return
	}
	sess, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authPage(c, "signup.html", statusOf(err), req.Email, err.Error())
		return
	}
	middleware.SetSessionCookies(c, sess.Tokens, h.cookies)
	c.Redirect(http.StatusSeeOther, "/onboarding")
}

// SignIn 有团队去首页，否则去 onboarding
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInReq
	if err := c.ShouldBind(&req); err != nil {
		h.authPage(c, "login.html", http.StatusBadRequest, req.Email, bindMessage(err, signInMessages))
		return
	}
	ctx := c.Request.Context()
	sess, err := h.svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.authPage(c, "login.html", statusOf(err), req.Email, err.Error())
		return
	}
	middleware.SetSessionCookies(c, sess.Tokens, h.cookies)
	h.land(c, sess.UserID)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.svc.SignOut(c.Request.Context(), middleware.CurrentSessionID(c)); err != nil {
		h.log.Warn("sign out failed", zap.Error(err))
	}
	middleware.ClearSessionCookies(c, h.cookies)
	c.Redirect(http.StatusSeeOther, "/login")
}

// GoogleStart 生成 state 存入 cookie session，再跳转到授权页
func (h *AuthHandler) GoogleStart(c *gin.Context) {
	state := uuid.NewString()
	url, err := h.svc.BeginOAuth(state)
	if err != nil {
		h.authPage(c, "login.html", statusOf(err), "", err.Error())
		return
	}
	sess, _ := h.store.Get(c.Request, oauthSessionName)
	sess.Options = h.oauthCookie(10 * 60)
	sess.Values[oauthStateKey] = state
	if err := sess.Save(c.Request, c.Writer); err != nil {
		h.log.Error("save oauth state failed", zap.Error(err))
		h.authPage(c, "login.html", http.StatusInternalServerError, "", "Could not start Google sign-in")
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

// GoogleCallback 校验 state 后换取身份并建立会话
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	sess, _ := h.store.Get(c.Request, oauthSessionName)
	want, _ := sess.Values[oauthStateKey].(string)
	delete(sess.Values, oauthStateKey)
	sess.Options = h.oauthCookie(-1)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		h.log.Warn("clear oauth state failed", zap.Error(err))
	}

	if want == "" || c.Query("state") != want {
		h.authPage(c, "login.html", http.StatusBadRequest, "", "Sign-in request expired, please try again")
		return
	}
	if c.Query("error") != "" {
		h.authPage(c, "login.html", http.StatusUnauthorized, "", "Google sign-in was cancelled")
		return
	}

	session, err := h.svc.CompleteOAuth(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("oauth callback failed", zap.Error(err))
		h.authPage(c, "login.html", statusOf(err), "", err.Error())
		return
	}
	middleware.SetSessionCookies(c, session.Tokens, h.cookies)
	h.land(c, session.UserID)
}

func (h *AuthHandler) land(c *gin.Context, userID string) {
	to, err := h.svc.Landing(c.Request.Context(), userID)
	if err != nil {
		h.log.Warn("landing lookup failed", zap.String("user_id", userID), zap.Error(err))
		to = "/"
	}
	c.Redirect(http.StatusSeeOther, to)
}

func (h *AuthHandler) authPage(c *gin.Context, page string, status int, email, msg string) {
	title := "Sign in"
	if page == "signup.html" {
		title = "Sign up"
	}
	h.render.HTML(c, status, page, gin.H{
		"Title": title,
		"Email": email,
		"Error": msg,
		"OAuth": h.svc.OAuthEnabled(),
	})
}

func (h *AuthHandler) oauthCookie(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/auth",
		MaxAge:   maxAge,
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
