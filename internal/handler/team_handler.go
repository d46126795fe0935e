package handler

import (
	"context"
	"net/http"

	"Team_Social/internal/middleware"
	"Team_Social/internal/model"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type Teams interface {
	ListTeams(ctx context.Context) ([]model.Team, error)
	Team(ctx context.Context, handle string) (*model.Team, error)
	CreateTeam(ctx context.Context, userID string, in service.CreateTeamInput) (*model.Team, bool, error)
	JoinTeam(ctx context.Context, userID string, in service.JoinTeamInput) (*model.Team, bool, error)
	RegenerateInviteCode(ctx context.Context, userID, teamID string) (string, error)
	TeamPage(ctx context.Context, viewerID, handle string) (*service.TeamPage, error)
}

type TeamHandler struct {
	svc    Teams
	render *Renderer
}

func NewTeamHandler(svc Teams, render *Renderer) *TeamHandler {
	return &TeamHandler{svc: svc, render: render}
}

// CreateTeamReq 创建团队表单
type CreateTeamReq struct {
	FullName   string `form:"fullName" binding:"max=100"`
	TeamName   string `form:"teamName" binding:"required,max=100"`
	TeamHandle string `form:"teamHandle" binding:"max=64"`
}

// JoinTeamReq 加入团队表单；teamId 为空时按邀请码查找
type JoinTeamReq struct {
	FullName   string `form:"fullName" binding:"max=100"`
	TeamID     string `form:"teamId"`
	InviteCode string `form:"inviteCode" binding:"required"`
}

var teamFormMessages = map[string]string{
	"TeamName.required":   "Team name is required",
	"TeamName.max":        "Team name must be at most 100 characters",
	"TeamHandle.max":      "Team handle must be at most 64 characters",
	"FullName.max":        "Name must be at most 100 characters",
	"InviteCode.required": "Invite code is required",
}

// TeamSummary /api/teams 的返回项，不含邀请码
type TeamSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

func (h *TeamHandler) Onboarding(c *gin.Context) {
	h.onboarding(c, http.StatusOK, gin.H{})
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req CreateTeamReq
	if err := c.ShouldBind(&req); err != nil {
		h.onboarding(c, http.StatusBadRequest, formState(req.FullName, req.TeamName, req.TeamHandle, bindMessage(err, teamFormMessages)))
		return
	}
	team, _, err := h.svc.CreateTeam(c.Request.Context(), middleware.CurrentUserID(c), service.CreateTeamInput{
		TeamName: req.TeamName,
		Handle:   req.TeamHandle,
		FullName: req.FullName,
	})
	if err != nil {
		h.onboarding(c, statusOf(err), formState(req.FullName, req.TeamName, req.TeamHandle, err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/team/"+team.Handle)
}

func (h *TeamHandler) Join(c *gin.Context) {
	var req JoinTeamReq
	if err := c.ShouldBind(&req); err != nil {
		h.onboarding(c, http.StatusBadRequest, formState(req.FullName, "", "", bindMessage(err, teamFormMessages)))
		return
	}
	team, _, err := h.svc.JoinTeam(c.Request.Context(), middleware.CurrentUserID(c), service.JoinTeamInput{
		TeamID:     req.TeamID,
		InviteCode: req.InviteCode,
		FullName:   req.FullName,
	})
	if err != nil {
		h.onboarding(c, statusOf(err), formState(req.FullName, "", "", err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/team/"+team.Handle)
}

// Page 团队主页；邀请码只对本团队成员可见
func (h *TeamHandler) Page(c *gin.Context) {
	page, err := h.svc.TeamPage(c.Request.Context(), middleware.CurrentUserID(c), c.Param("handle"))
	if err != nil {
		if service.KindOf(err) == service.KindNotFound {
			h.render.NotFound(c, "Team not found")
			return
		}
		h.render.HTML(c, statusOf(err), "not_found.html", gin.H{"Title": "Error", "Error": err.Error()})
		return
	}
	h.render.HTML(c, http.StatusOK, "team.html", gin.H{"Title": page.Team.Name, "Page": page})
}

// RegenerateInviteCode 就地操作，返回新邀请码
func (h *TeamHandler) RegenerateInviteCode(c *gin.Context) {
	ctx := c.Request.Context()
	team, err := h.svc.Team(ctx, c.Param("handle"))
	if err != nil {
		jsonError(c, err)
		return
	}
	code, err := h.svc.RegenerateInviteCode(ctx, middleware.CurrentUserID(c), team.ID)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inviteCode": code})
}

// List 团队选择器用
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": lo.Map(teams, func(t model.Team, _ int) TeamSummary {
		return TeamSummary{ID: t.ID, Name: t.Name, Handle: t.Handle}
	})})
}

func (h *TeamHandler) onboarding(c *gin.Context, status int, data gin.H) {
	teams, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		status = statusOf(err)
		if data["Error"] == nil {
			data["Error"] = err.Error()
		}
	}
	data["Title"] = "Set up your team"
	data["Teams"] = teams
	h.render.HTML(c, status, "onboarding.html", data)
}

func formState(fullName, teamName, teamHandle, msg string) gin.H {
	return gin.H{"FullName": fullName, "TeamName": teamName, "TeamHandle": teamHandle, "Error": msg}
}
