package services

import (
	"errors"
	"time"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

// UserService serves public profile views of other users.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// publicProjectLimit caps the project lists on a public profile.
const publicProjectLimit = 6

type PublicMembership struct {
	Role     string          `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
	Project  *models.Project `json:"project"`
}

type PublicProfile struct {
	models.User
	OwnedProjectCount int64              `json:"owned_project_count"`
	MembershipCount   int64              `json:"membership_count"`
	PublicProjects    []models.Project   `json:"public_projects"`
	PublicMemberships []PublicMembership `json:"public_memberships"`
	IsCurrentUser     bool               `json:"is_current_user"`
}

// PublicProfile returns the user's profile plus their public projects:
// up to 6 owned public projects and up to 6 memberships in public projects.
// Private and team projects never appear, regardless of who is asking.
func (s *UserService) PublicProfile(userID, requesterID uint) (*PublicProfile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	profile := &PublicProfile{
		User:          user,
		IsCurrentUser: requesterID != 0 && requesterID == userID,
	}
	if !profile.User.ShowEmail && !profile.IsCurrentUser {
		profile.User.Email = ""
	}

	if err := s.db.Model(&models.Project{}).Where("owner_id = ?", userID).
		Count(&profile.OwnedProjectCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ProjectMember{}).Where("user_id = ?", userID).
		Count(&profile.MembershipCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("owner_id = ? AND visibility = ?", userID, models.VisibilityPublic).
		Order("updated_at DESC").
		Limit(publicProjectLimit).
		Find(&profile.PublicProjects).Error; err != nil {
		return nil, err
	}

	var memberships []models.ProjectMember
	err := s.db.Where("user_id = ?", userID).
		Joins("JOIN projects ON projects.id = project_members.project_id AND projects.visibility = ?", models.VisibilityPublic).
		Preload("Project").
		Preload("Project.Owner").
		Order("project_members.created_at DESC").
		Limit(publicProjectLimit).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	profile.PublicMemberships = make([]PublicMembership, 0, len(memberships))
	for _, m := range memberships {
		profile.PublicMemberships = append(profile.PublicMemberships, PublicMembership{
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
			Project:  m.Project,
		})
	}

	return profile, nil
}
