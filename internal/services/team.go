package services

import (
	"errors"
	"strings"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

// TeamService implements the join/leave lifecycle for project memberships.
type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

type JoinTeamRequest struct {
	Role string `json:"role"`
}

// Join adds userID as a member of the project identified by slug.
//
// Preconditions, checked in order: the user and project exist, the user is
// not the owner, not already a member, the project is recruiting, and the
// team has a free slot. The recruiting/capacity checks and the insert run
// in a single transaction so concurrent joins cannot overbook the last
// slot; the unique (project, user) index backstops double joins.
func (s *TeamService) Join(userID uint, slug, role string) (*models.ProjectMember, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = models.DefaultMemberRole
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var member models.ProjectMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("slug = ?", slug).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("project not found")
			}
			return err
		}

		if project.OwnerID == userID {
			return response.NewBadRequest("you are already the owner of this project")
		}

		var existing int64
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", project.ID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return response.NewBadRequest("you are already a member of this team")
		}

		if !project.LookingForTeam {
			return response.NewBadRequest("this project is not currently looking for team members")
		}

		var memberCount int64
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ?", project.ID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount >= int64(project.MemberCapacity()) {
			return response.NewBadRequest("this team is already full")
		}

		member = models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      role,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBadRequest("you are already a member of this team")
		}
		return nil, err
	}

	// Reload with user and project resolved
	if err := s.db.Preload("User").Preload("Project").First(&member, member.ID).Error; err != nil {
		return nil, err
	}

	logger.Info().Uint("user_id", userID).Uint("project_id", member.ProjectID).Str("role", role).Msg("joined team")
	return &member, nil
}

// Leave removes userID's membership from the project identified by slug.
// Owners cannot leave their own project; they must delete it instead.
func (s *TeamService) Leave(userID uint, slug string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	var project models.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	if project.OwnerID == userID {
		return response.NewBadRequest("project owners cannot leave their own project")
	}

	var membership models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", project.ID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewBadRequest("you are not a member of this team")
		}
		return err
	}

	if err := s.db.Delete(&membership).Error; err != nil {
		return err
	}

	logger.Info().Uint("user_id", userID).Uint("project_id", project.ID).Msg("left team")
	return nil
}
