package handler

import (
	"context"
	"net/http"

	"Team_Social/internal/middleware"
	"Team_Social/internal/model"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type Posts interface {
	CreatePost(ctx context.Context, userID, content string) (*model.Post, error)
	Feed(ctx context.Context, userID string, scope service.FeedScope) ([]model.Post, error)
}

type PostHandler struct {
	svc    Posts
	render *Renderer
}

func NewPostHandler(svc Posts, render *Renderer) *PostHandler {
	return &PostHandler{svc: svc, render: render}
}

type ComposeReq struct {
	Content string `form:"content"`
}

// Feed 首页时间线，?feed=following 只看本团队与关注的团队
func (h *PostHandler) Feed(c *gin.Context) {
	scope := service.ParseFeedScope(c.Query("feed"))
	posts, err := h.svc.Feed(c.Request.Context(), middleware.CurrentUserID(c), scope)
	data := gin.H{"Title": "Home", "Scope": string(scope), "Posts": posts}
	status := http.StatusOK
	if err != nil {
		status = statusOf(err)
		data["Error"] = err.Error()
	}
	h.render.HTML(c, status, "feed.html", data)
}

func (h *PostHandler) ComposePage(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "compose.html", gin.H{"Title": "New post", "Content": ""})
}

// Compose 发帖成功回到首页，失败带原文重新渲染
func (h *PostHandler) Compose(c *gin.Context) {
	var req ComposeReq
	if err := c.ShouldBind(&req); err != nil {
		h.render.HTML(c, http.StatusBadRequest, "compose.html", gin.H{"Title": "New post", "Content": req.Content, "Error": bindMessage(err, nil)})
		return
	}
	if _, err := h.svc.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), req.Content); err != nil {
		h.render.HTML(c, statusOf(err), "compose.html", gin.H{"Title": "New post", "Content": req.Content, "Error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
