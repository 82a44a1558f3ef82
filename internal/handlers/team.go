package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{
		teamService: services.NewTeamService(db),
	}
}

// Join adds the signed-in user to a project's team
// POST /api/projects/:slug/join
func (h *TeamHandler) Join(c *gin.Context) {
	var req services.JoinTeamRequest
	// Body is optional; the role defaults when absent
	_ = c.ShouldBindJSON(&req)

	member, err := h.teamService.Join(middleware.GetUserID(c), c.Param("slug"), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// Leave removes the signed-in user from a project's team
// POST /api/projects/:slug/leave
func (h *TeamHandler) Leave(c *gin.Context) {
	if err := h.teamService.Leave(middleware.GetUserID(c), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
