package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	uploadService  *services.UploadService
}

func NewProfileHandler(db *gorm.DB, uploadSvc *services.UploadService) *ProfileHandler {
	return &ProfileHandler{
		profileService: services.NewProfileService(db),
		uploadService:  uploadSvc,
	}
}

// Get returns the signed-in user's own profile
// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.profileService.Get(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// Update applies a partial profile update
// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.profileService.Update(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// UploadImage stores a new avatar and records it on the profile
// POST /api/profile/image
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	url, err := h.uploadService.SaveProfileImage(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profileService.SetCustomImage(middleware.GetUserID(c), url); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"url": url})
}
