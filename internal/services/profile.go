package services

import (
	"errors"
	"strings"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

// ProfileService manages the signed-in user's own profile.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type UpdateProfileRequest struct {
	DisplayName        *string            `json:"display_name"`
	Bio                *string            `json:"bio"`
	Location           *string            `json:"location"`
	Website            *string            `json:"website"`
	CustomImage        *string            `json:"custom_image"`
	Skills             *map[string]int    `json:"skills"`
	SocialLinks        *map[string]string `json:"social_links"`
	LookingForTeam     *bool              `json:"looking_for_team"`
	AvailabilityStatus *string            `json:"availability_status"`
	PreferredRoles     *[]string          `json:"preferred_roles"`
	Experience         *string            `json:"experience"`
}

// EnsureUser returns the user for email, creating the record on first
// authenticated access. Called only at the auth boundary; reads elsewhere
// never create users as a side effect.
func (s *ProfileService) EnsureUser(email, name, image string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, response.NewBadRequest("email is required")
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{Email: email, Name: name, Image: image}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent first login; reread
			if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
				return nil, err
			}
			return &user, nil
		}
		return nil, err
	}

	logger.Info().Uint("user_id", user.ID).Str("email", email).Msg("user created")
	return &user, nil
}

// Get returns userID's own profile.
func (s *ProfileService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile update. Email is immutable and not part
// of the request shape. Skill ratings must lie in [1,5].
func (s *ProfileService) Update(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.CustomImage != nil {
		updates["custom_image"] = *req.CustomImage
	}
	if req.Skills != nil {
		skills := models.SkillMap(*req.Skills)
		if err := skills.Validate(); err != nil {
			return nil, response.NewBadRequest("skill ratings must be between 1 and 5")
		}
		updates["skills"] = skills
	}
	if req.SocialLinks != nil {
		updates["social_links"] = models.StringMap(*req.SocialLinks)
	}
	if req.LookingForTeam != nil {
		updates["looking_for_team"] = *req.LookingForTeam
	}
	if req.AvailabilityStatus != nil {
		if !models.ValidAvailability(*req.AvailabilityStatus) {
			return nil, response.NewBadRequest("invalid availability status")
		}
		updates["availability_status"] = *req.AvailabilityStatus
	}
	if req.PreferredRoles != nil {
		updates["preferred_roles"] = models.StringList(*req.PreferredRoles)
	}
	if req.Experience != nil {
		if !models.ValidExperience(*req.Experience) {
			return nil, response.NewBadRequest("invalid experience level")
		}
		updates["experience"] = *req.Experience
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &user, nil
}

// SetCustomImage records the uploaded avatar URL.
func (s *ProfileService) SetCustomImage(userID uint, url string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("custom_image", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("user not found")
	}
	return nil
}
