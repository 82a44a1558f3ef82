package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{
		accountService: services.NewAccountService(db),
	}
}

// GetSettings returns the signed-in user's settings
// GET /api/settings
func (h *AccountHandler) GetSettings(c *gin.Context) {
	settings, err := h.accountService.GetSettings(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, settings)
}

// UpdateSettings applies a partial settings update
// PUT /api/settings
func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.accountService.UpdateSettings(userID, &req); err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.accountService.GetSettings(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, settings)
}

// DeleteAccount removes the account and everything it owns
// DELETE /api/settings/account
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
