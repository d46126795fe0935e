package handler

import (
	"context"
	"net/http"

	"Team_Social/internal/middleware"
	"Team_Social/internal/model"

	"github.com/gin-gonic/gin"
)

type Follows interface {
	Follow(ctx context.Context, userID, targetTeamID string) error
	Unfollow(ctx context.Context, userID, targetTeamID string) error
}

// TeamFinder 按 handle 找团队
type TeamFinder interface {
	Team(ctx context.Context, handle string) (*model.Team, error)
}

type FollowHandler struct {
	svc   Follows
	teams TeamFinder
}

func NewFollowHandler(svc Follows, teams TeamFinder) *FollowHandler {
	return &FollowHandler{svc: svc, teams: teams}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	h.act(c, h.svc.Follow)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	h.act(c, h.svc.Unfollow)
}

func (h *FollowHandler) act(c *gin.Context, fn func(ctx context.Context, userID, targetTeamID string) error) {
	ctx := c.Request.Context()
	team, err := h.teams.Team(ctx, c.Param("handle"))
	if err != nil {
		jsonError(c, err)
		return
	}
	if err := fn(ctx, middleware.CurrentUserID(c), team.ID); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
