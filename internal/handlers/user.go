package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService     *services.UserService
	teammateService *services.TeammateService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userService:     services.NewUserService(db),
		teammateService: services.NewTeammateService(db),
	}
}

// GetProfile returns a user's public profile
// GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.userService.PublicProfile(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// SearchTeammates returns users looking for a team
// GET /api/teammates
func (h *UserHandler) SearchTeammates(c *gin.Context) {
	var req services.TeammateSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	users, err := h.teammateService.Search(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, users)
}
