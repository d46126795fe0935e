package middleware

import (
	"context"
	"net/http"
	"strings"

	"Team_Social/internal/model"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Decision 网关判定结果；Redirect 为空表示放行
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Decide 纯函数，按顺序匹配，命中即返回
func Decide(path string, hasSession, hasProfile bool) Decision {
	switch {
	case !hasSession && (under(path, "/compose") || under(path, "/onboarding")):
		return Decision{Redirect: "/login"}
	case hasSession && isAuthPage(path):
		return Decision{Redirect: "/"}
	case hasSession && !hasProfile && !under(path, "/auth") && !under(path, "/onboarding"):
		return Decision{Redirect: "/onboarding"}
	case hasSession && hasProfile && under(path, "/onboarding"):
		return Decision{Redirect: "/"}
	}
	return Decision{}
}

func isAuthPage(path string) bool {
	return under(path, "/login") || under(path, "/signup")
}

func under(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

type SessionResolver interface {
	Resolve(ctx context.Context, access, refresh string) (*service.Session, error)
}

type ProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// Gate 每个页面与动作请求先经过这里：恢复会话、必要时查档案，再按 Decide 303 跳转
func Gate(auth SessionResolver, profiles ProfileFinder, cookies CookieOptions, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		path := c.Request.URL.Path

		access, refresh := readTokens(c)
		var sess *service.Session
		if access != "" || refresh != "" {
			var err error
			if sess, err = auth.Resolve(ctx, access, refresh); err != nil {
				// 后端故障时保留 cookie
				log.Error("resolve session failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			if sess == nil {
				ClearSessionCookies(c, cookies)
			}
		}

		hasProfile := false
		if sess != nil {
			if sess.Tokens != nil {
				SetSessionCookies(c, sess.Tokens, cookies)
			}
			c.Set(ContextUserIDKey, sess.UserID)
			c.Set(ContextSessionIDKey, sess.ID)

			if !under(path, "/auth") && !isAuthPage(path) {
				profile, err := profiles.FindByUserID(ctx, sess.UserID)
				if err != nil {
					log.Error("load profile failed", zap.String("user_id", sess.UserID), zap.Error(err))
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
					return
				}
				if profile != nil {
					hasProfile = true
					c.Set(ContextProfileKey, profile)
				}
			}
		}

		if d := Decide(path, sess != nil, hasProfile); !d.Allowed() {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}
