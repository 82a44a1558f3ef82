package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name            string   `json:"name" binding:"required"`
	Genre           string   `json:"genre" binding:"required"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	Stage           string   `json:"stage" binding:"omitempty,oneof=Concept Pre-Production Production Beta Released"`
	Platforms       []string `json:"platforms"`
	Engine          string   `json:"engine"`
	TeamSize        int      `json:"team_size" binding:"omitempty,min=1"`
	LookingForTeam  bool     `json:"looking_for_team"`
	RolesNeeded     []string `json:"roles_needed"`
	Tags            []string `json:"tags"`
	Visibility      string   `json:"visibility" binding:"omitempty,oneof=public private team"`
	CoverImage      string   `json:"cover_image"`
	Screenshots     []string `json:"screenshots"`
	VideoURL        string   `json:"video_url"`
}

type UpdateProjectRequest struct {
	Name            *string   `json:"name"`
	Genre           *string   `json:"genre"`
	Description     *string   `json:"description"`
	LongDescription *string   `json:"long_description"`
	Stage           *string   `json:"stage" binding:"omitempty,oneof=Concept Pre-Production Production Beta Released"`
	Platforms       *[]string `json:"platforms"`
	Engine          *string   `json:"engine"`
	TeamSize        *int      `json:"team_size" binding:"omitempty,min=1"`
	LookingForTeam  *bool     `json:"looking_for_team"`
	RolesNeeded     *[]string `json:"roles_needed"`
	Tags            *[]string `json:"tags"`
	Visibility      *string   `json:"visibility" binding:"omitempty,oneof=public private team"`
	CoverImage      *string   `json:"cover_image"`
	Screenshots     *[]string `json:"screenshots"`
	VideoURL        *string   `json:"video_url"`
}

type ListProjectsRequest struct {
	OwnerID    uint   `form:"owner_id"`
	Visibility string `form:"visibility" binding:"omitempty,oneof=public private team"`
}

// ProjectSummary is a list-view row: the project plus its member count.
type ProjectSummary struct {
	models.Project
	MemberCount int64 `json:"member_count"`
}

// TeamEntry is one row of a project roster. The owner entry is synthesized
// from Project.Owner; owners never hold a member row.
type TeamEntry struct {
	User     *models.User `json:"user"`
	Role     string       `json:"role"`
	IsOwner  bool         `json:"is_owner"`
	JoinedAt *time.Time   `json:"joined_at,omitempty"`
}

// ProjectDetail is the full read view of a project for a given requester.
type ProjectDetail struct {
	models.Project
	IsOwner  bool        `json:"is_owner"`
	IsMember bool        `json:"is_member"`
	Team     []TeamEntry `json:"team"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases the name, collapses runs of non-alphanumeric
// characters into single hyphens, and trims leading/trailing hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug probes for the first free slug derived from name: base, then
// base-1, base-2, and so on. Must run inside the same transaction as the
// insert so a concurrent create cannot claim the probed slug first; the
// unique index on slug backstops the race.
func uniqueSlug(tx *gorm.DB, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "project"
	}

	slug := base
	for counter := 1; ; counter++ {
		var count int64
		if err := tx.Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Create creates a project owned by ownerID. The slug probe and insert run
// in one transaction, retried once if a concurrent create wins the slug.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID uint) (*models.Project, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Genre) == "" {
		return nil, response.NewBadRequest("name and genre are required")
	}

	var owner models.User
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	stage := req.Stage
	if stage == "" {
		stage = models.StageConcept
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	teamSize := req.TeamSize
	if teamSize < 1 {
		teamSize = 1
	}

	var project models.Project
	create := func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			slug, err := uniqueSlug(tx, req.Name)
			if err != nil {
				return err
			}

			project = models.Project{
				Slug:            slug,
				Name:            req.Name,
				Description:     req.Description,
				LongDescription: req.LongDescription,
				Genre:           req.Genre,
				Stage:           stage,
				Platforms:       req.Platforms,
				Engine:          req.Engine,
				TeamSize:        teamSize,
				LookingForTeam:  req.LookingForTeam,
				RolesNeeded:     req.RolesNeeded,
				Tags:            req.Tags,
				Visibility:      visibility,
				CoverImage:      req.CoverImage,
				Screenshots:     req.Screenshots,
				VideoURL:        req.VideoURL,
				OwnerID:         ownerID,
			}
			return tx.Create(&project).Error
		})
	}

	if err := create(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the slug race; probe again
			if err := create(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	project.Owner = &owner
	logger.Info().Uint("project_id", project.ID).Str("slug", project.Slug).Uint("owner_id", ownerID).Msg("project created")
	return &project, nil
}

// GetBySlug loads a project and resolves the requester's access.
// requesterID 0 means anonymous.
func (s *ProjectService) GetBySlug(slug string, requesterID uint) (*ProjectDetail, error) {
	var project models.Project
	err := s.db.Where("slug = ?", slug).
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	access := ResolveProjectAccess(requesterID, &project)
	if !access.Granted {
		return nil, response.NewForbidden("access denied")
	}

	detail := &ProjectDetail{
		Project:  project,
		IsOwner:  access.IsOwner,
		IsMember: access.IsMember,
		Team:     make([]TeamEntry, 0, len(project.Members)+1),
	}
	detail.Team = append(detail.Team, TeamEntry{
		User:    project.Owner,
		Role:    "Owner",
		IsOwner: true,
	})
	for _, m := range project.Members {
		joined := m.CreatedAt
		detail.Team = append(detail.Team, TeamEntry{
			User:     m.User,
			Role:     m.Role,
			JoinedAt: &joined,
		})
	}

	return detail, nil
}

// List returns projects matching the filters, newest first. Defaults to
// public projects when no visibility filter is given; non-public listings
// are restricted to the requesting owner.
func (s *ProjectService) List(req *ListProjectsRequest, requesterID uint) ([]ProjectSummary, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && (requesterID == 0 || req.OwnerID != requesterID) {
		return nil, response.NewForbidden("access denied")
	}

	query := s.db.Model(&models.Project{}).Where("visibility = ?", visibility)
	if req.OwnerID != 0 {
		query = query.Where("owner_id = ?", req.OwnerID)
	}

	var projects []models.Project
	if err := query.Preload("Owner").Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	counts, err := s.memberCounts(projects)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{Project: p, MemberCount: counts[p.ID]})
	}
	return summaries, nil
}

// memberCounts returns member counts for all listed projects in one
// grouped query.
func (s *ProjectService) memberCounts(projects []models.Project) (map[uint]int64, error) {
	if len(projects) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var rows []struct {
		ProjectID uint
		Total     int64
	}
	err := s.db.Model(&models.ProjectMember{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ProjectID] = r.Total
	}
	return counts, nil
}

// Update applies a partial update. Only the owner may update; nil fields
// are left untouched, non-nil fields overwrite (including to empty values).
func (s *ProjectService) Update(slug string, req *UpdateProjectRequest, requesterID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.OwnerID != requesterID {
		return nil, response.NewForbidden("only the project owner can edit this project")
	}

	updates := make(map[string]interface{})

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		updates["name"] = *req.Name
	}
	if req.Genre != nil && strings.TrimSpace(*req.Genre) != "" {
		updates["genre"] = *req.Genre
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LongDescription != nil {
		updates["long_description"] = *req.LongDescription
	}
	if req.Stage != nil {
		updates["stage"] = *req.Stage
	}
	if req.Platforms != nil {
		updates["platforms"] = models.StringList(*req.Platforms)
	}
	if req.Engine != nil {
		updates["engine"] = *req.Engine
	}
	if req.TeamSize != nil {
		updates["team_size"] = *req.TeamSize
	}
	if req.LookingForTeam != nil {
		updates["looking_for_team"] = *req.LookingForTeam
	}
	if req.RolesNeeded != nil {
		updates["roles_needed"] = models.StringList(*req.RolesNeeded)
	}
	if req.Tags != nil {
		updates["tags"] = models.StringList(*req.Tags)
	}
	if req.Visibility != nil {
		updates["visibility"] = *req.Visibility
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.Screenshots != nil {
		updates["screenshots"] = models.StringList(*req.Screenshots)
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &project, nil
}

// Delete removes a project and all its membership rows. Owner only.
func (s *ProjectService) Delete(slug string, requesterID uint) error {
	var project models.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	if project.OwnerID != requesterID {
		return response.NewForbidden("only the project owner can delete this project")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return err
	}

	logger.Info().Uint("project_id", project.ID).Str("slug", project.Slug).Msg("project deleted")
	return nil
}
