package router

import (
	"fmt"

	"Team_Social/internal/handler"
	"Team_Social/internal/middleware"
	"Team_Social/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps 路由需要的处理器与中间件
type Deps struct {
	Auth    *handler.AuthHandler
	Teams   *handler.TeamHandler
	Posts   *handler.PostHandler
	Follows *handler.FollowHandler
	Health  *handler.HealthHandler
	Render  *handler.Renderer
	Gate    gin.HandlerFunc
	Log     *zap.Logger
}

func InitRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Recovery(d.Log), middleware.RequestLogger(d.Log))

	tmpl, err := view.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 不经过网关
	r.StaticFS("/static", view.Static())
	r.GET("/healthz", d.Health.Healthz)
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/teams", d.Teams.List)
	}

	// 页面与就地操作都先过网关
	pages := r.Group("/", d.Gate, middleware.NoStore())
	{
		pages.GET("/", d.Posts.Feed)
		pages.GET("/compose", d.Posts.ComposePage)
		pages.POST("/compose", d.Posts.Compose)
	}

	// 认证相关
	authGroup := pages.Group("")
	{
		authGroup.GET("/login", d.Auth.LoginPage)
		authGroup.POST("/login", d.Auth.SignIn)
		authGroup.GET("/signup", d.Auth.SignUpPage)
		authGroup.POST("/signup", d.Auth.SignUp)
		authGroup.GET("/auth/google", d.Auth.GoogleStart)
		authGroup.GET("/auth/callback", d.Auth.GoogleCallback)
		authGroup.POST("/auth/signout", d.Auth.SignOut)
	}

	// 入驻
	onboardingGroup := pages.Group("/onboarding")
	{
		onboardingGroup.GET("", d.Teams.Onboarding)
		onboardingGroup.POST("/create", d.Teams.Create)
		onboardingGroup.POST("/join", d.Teams.Join)
	}

	// 团队主页与关注
	teamGroup := pages.Group("/team/:handle")
	{
		teamGroup.GET("", d.Teams.Page)
		teamGroup.POST("/follow", d.Follows.Follow)
		teamGroup.POST("/unfollow", d.Follows.Unfollow)
		teamGroup.POST("/invite-code", d.Teams.RegenerateInviteCode)
	}

	r.NoRoute(d.Gate, func(c *gin.Context) {
		d.Render.NotFound(c, "")
	})

	return r, nil
}
