package models

import (
	"time"
)

// DefaultMemberRole is assigned when a join request carries no role label.
const DefaultMemberRole = "Team Member"

// ProjectMember links a non-owner user to a project with a free-text role
// label. At most one row per (project, user) pair.
type ProjectMember struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProjectID uint     `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint     `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string   `gorm:"size:100;default:Team Member" json:"role"`

	CreatedAt time.Time `json:"joined_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
