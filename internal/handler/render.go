package handler

import (
	"context"
	"errors"
	"net/http"

	"Team_Social/internal/middleware"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Navigator 导航栏状态
type Navigator interface {
	Navbar(ctx context.Context, userID string) (service.NavState, error)
}

// Renderer 页面渲染：统一补上导航栏
type Renderer struct {
	nav Navigator
	log *zap.Logger
}

func NewRenderer(nav Navigator, log *zap.Logger) *Renderer {
	return &Renderer{nav: nav, log: log}
}

func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Nav"] = r.navState(c)
	c.HTML(status, name, data)
}

// navState 网关已查到档案时直接用，不再查库
func (r *Renderer) navState(c *gin.Context) service.NavState {
	if profile := middleware.CurrentProfile(c); profile != nil && profile.Team != nil {
		return service.NavFor(profile)
	}
	nav, err := r.nav.Navbar(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		// 导航栏失败不影响页面本身
		r.log.Warn("navbar failed", zap.Error(err))
	}
	return nav
}

// NotFound 404 页面
func (r *Renderer) NotFound(c *gin.Context, msg string) {
	r.HTML(c, http.StatusNotFound, "not_found.html", gin.H{"Title": "Not found", "Error": msg})
}

// statusOf 错误类别对应的 HTTP 状态码
func statusOf(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindSelfRef:
		return http.StatusBadRequest
	case service.KindAuthRequired:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// jsonError 就地操作统一返回 {error}
func jsonError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

// bindMessage 把 validator 的校验失败翻译成表单提示；key 为 "字段.tag"
func bindMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
				return msg
			}
		}
	}
	return "Invalid form submission"
}
