package services

import (
	"errors"
	"time"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

// AccountService covers account settings and account deletion.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

type AccountSettings struct {
	ProfileVisibility          string `json:"profile_visibility"`
	ShowEmail                  bool   `json:"show_email"`
	EmailNotifications         bool   `json:"email_notifications"`
	TeamInviteNotifications    bool   `json:"team_invite_notifications"`
	ProjectUpdateNotifications bool   `json:"project_update_notifications"`
	NewsletterSubscription     bool   `json:"newsletter_subscription"`
	Theme                      string `json:"theme"`
	Language                   string `json:"language"`
	Timezone                   string `json:"timezone"`
}

type UpdateSettingsRequest struct {
	ProfileVisibility          *string `json:"profile_visibility" binding:"omitempty,oneof=public private"`
	ShowEmail                  *bool   `json:"show_email"`
	EmailNotifications         *bool   `json:"email_notifications"`
	TeamInviteNotifications    *bool   `json:"team_invite_notifications"`
	ProjectUpdateNotifications *bool   `json:"project_update_notifications"`
	NewsletterSubscription     *bool   `json:"newsletter_subscription"`
	Theme                      *string `json:"theme" binding:"omitempty,oneof=dark light"`
	Language                   *string `json:"language"`
	Timezone                   *string `json:"timezone"`
}

type SettingsResponse struct {
	Settings          AccountSettings `json:"settings"`
	ConnectedAccounts []string        `json:"connected_accounts"`
	AccountCreated    time.Time       `json:"account_created"`
}

// GetSettings returns userID's settings plus linked OAuth providers.
func (s *AccountService) GetSettings(userID uint) (*SettingsResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var accounts []models.OAuthAccount
	if err := s.db.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	providers := make([]string, 0, len(accounts))
	for _, a := range accounts {
		providers = append(providers, a.Provider)
	}

	return &SettingsResponse{
		Settings: AccountSettings{
			ProfileVisibility:          user.ProfileVisibility,
			ShowEmail:                  user.ShowEmail,
			EmailNotifications:         user.EmailNotifications,
			TeamInviteNotifications:    user.TeamInviteNotifications,
			ProjectUpdateNotifications: user.ProjectUpdateNotifications,
			NewsletterSubscription:     user.NewsletterSubscription,
			Theme:                      user.Theme,
			Language:                   user.Language,
			Timezone:                   user.Timezone,
		},
		ConnectedAccounts: providers,
		AccountCreated:    user.CreatedAt,
	}, nil
}

// UpdateSettings applies a partial settings update.
func (s *AccountService) UpdateSettings(userID uint, req *UpdateSettingsRequest) error {
	updates := make(map[string]interface{})

	if req.ProfileVisibility != nil {
		updates["profile_visibility"] = *req.ProfileVisibility
	}
	if req.ShowEmail != nil {
		updates["show_email"] = *req.ShowEmail
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.TeamInviteNotifications != nil {
		updates["team_invite_notifications"] = *req.TeamInviteNotifications
	}
	if req.ProjectUpdateNotifications != nil {
		updates["project_update_notifications"] = *req.ProjectUpdateNotifications
	}
	if req.NewsletterSubscription != nil {
		updates["newsletter_subscription"] = *req.NewsletterSubscription
	}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	if len(updates) == 0 {
		return nil
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("user not found")
	}
	return nil
}

// DeleteAccount removes the user and everything they own: refresh tokens,
// OAuth links, their memberships, their projects, and those projects'
// memberships. Projects the user merely belonged to lose only that
// membership row.
func (s *AccountService) DeleteAccount(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.OAuthAccount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		var owned []models.Project
		if err := tx.Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
			return err
		}
		for _, p := range owned {
			if err := tx.Where("project_id = ?", p.ID).Delete(&models.ProjectMember{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ?", userID).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	logger.Info().Uint("user_id", userID).Msg("account deleted")
	return nil
}
