package middleware

import (
	"net/http"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey    = "user_id"
	ContextSessionIDKey = "session_id"
	ContextProfileKey   = "profile"

	AccessCookie  = "ts_access"
	RefreshCookie = "ts_refresh"
)

type CookieOptions struct {
	Secure bool
}

// SetSessionCookies 写入 HttpOnly 的 access/refresh cookie
func SetSessionCookies(c *gin.Context, pair *pkg.Pair, opt CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, pair.AccessToken, int(pkg.AccessTTL.Seconds()), "/", "", opt.Secure, true)
	c.SetCookie(RefreshCookie, pair.RefreshToken, int(pkg.RefreshTTL.Seconds()), "/", "", opt.Secure, true)
}

func ClearSessionCookies(c *gin.Context, opt CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", opt.Secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", opt.Secure, true)
}

func readTokens(c *gin.Context) (access, refresh string) {
	access, _ = c.Cookie(AccessCookie)
	refresh, _ = c.Cookie(RefreshCookie)
	return access, refresh
}

// CurrentUserID 未登录返回空串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}

// CurrentProfile 只有网关查过档案才有值
func CurrentProfile(c *gin.Context) *model.Profile {
	v, ok := c.Get(ContextProfileKey)
	if !ok {
		return nil
	}
	p, _ := v.(*model.Profile)
	return p
}
