package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	uploadService  *services.UploadService
}

func NewProjectHandler(db *gorm.DB, uploadSvc *services.UploadService) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		uploadService:  uploadSvc,
	}
}

// List returns project listings visible to the requester
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projects, err := h.projectService.List(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// Create creates a project owned by the signed-in user
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// GetBySlug returns a project detail with its roster
// GET /api/projects/:slug
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	detail, err := h.projectService.GetBySlug(c.Param("slug"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Update applies a partial update, owner only
// PUT /api/projects/:slug
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Param("slug"), &req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project and its memberships, owner only
// DELETE /api/projects/:slug
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Param("slug"), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UploadMedia stores a screenshot or cover image
// POST /api/projects/media
func (h *ProjectHandler) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "media file is required")
		return
	}

	url, err := h.uploadService.SaveMedia(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"url": url})
}
