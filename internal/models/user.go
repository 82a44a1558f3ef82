package models

import (
	"time"
)

// Availability status values for User.AvailabilityStatus.
const (
	AvailabilityAvailable    = "available"
	AvailabilityBusy         = "busy"
	AvailabilityOpenToOffers = "open_to_offers"
)

// Experience level values for User.Experience.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceExpert       = "expert"
)

// User is a registered account. Email is the identity key and never changes
// after creation.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string    `gorm:"size:100" json:"name"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	PasswordHash string    `gorm:"size:255" json:"-"` // empty for OAuth-only accounts
	Bio          string    `gorm:"type:text" json:"bio"`
	Location     string    `gorm:"size:100" json:"location"`
	Website      string    `gorm:"size:500" json:"website"`
	Image        string    `gorm:"size:500" json:"image"`        // avatar from the OAuth provider
	CustomImage  string    `gorm:"size:500" json:"custom_image"` // uploaded avatar, wins over Image
	Skills       SkillMap  `gorm:"type:text" json:"skills"`
	SocialLinks  StringMap `gorm:"type:text" json:"social_links"`

	LookingForTeam     bool       `gorm:"default:false;index" json:"looking_for_team"`
	AvailabilityStatus string     `gorm:"size:20;default:available" json:"availability_status"`
	PreferredRoles     StringList `gorm:"type:text" json:"preferred_roles"`
	Experience         string     `gorm:"size:20;default:beginner" json:"experience"`

	// Account settings
	ProfileVisibility          string `gorm:"size:20;default:public" json:"profile_visibility"`
	ShowEmail                  bool   `gorm:"default:false" json:"show_email"`
	EmailNotifications         bool   `gorm:"default:true" json:"email_notifications"`
	TeamInviteNotifications    bool   `gorm:"default:true" json:"team_invite_notifications"`
	ProjectUpdateNotifications bool   `gorm:"default:true" json:"project_update_notifications"`
	NewsletterSubscription     bool   `gorm:"default:false" json:"newsletter_subscription"`
	Theme                      string `gorm:"size:20;default:dark" json:"theme"`
	Language                   string `gorm:"size:10;default:en" json:"language"`
	Timezone                   string `gorm:"size:50;default:UTC" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AvatarURL returns the uploaded avatar when present, falling back to the
// OAuth provider image.
func (u *User) AvatarURL() string {
	if u.CustomImage != "" {
		return u.CustomImage
	}
	return u.Image
}

// ValidAvailability reports whether s is a known availability status.
func ValidAvailability(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOpenToOffers:
		return true
	}
	return false
}

// ValidExperience reports whether s is a known experience level.
func ValidExperience(s string) bool {
	switch s {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}
