package models

import (
	"time"
)

// Visibility values for Project.Visibility.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityTeam    = "team"
)

// Development stage values for Project.Stage.
const (
	StageConcept       = "Concept"
	StagePreProduction = "Pre-Production"
	StageProduction    = "Production"
	StageBeta          = "Beta"
	StageReleased      = "Released"
)

// Project is a game-development project listing. Exactly one owner; the
// owner never appears in the members table. TeamSize counts the owner, so
// at most TeamSize-1 member rows may exist.
type Project struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Slug            string     `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	Name            string     `gorm:"size:200;not null" json:"name"`
	Description     string     `gorm:"size:500" json:"description"`
	LongDescription string     `gorm:"type:text" json:"long_description"`
	Genre           string     `gorm:"size:100;not null" json:"genre"`
	Stage           string     `gorm:"size:50;default:Concept" json:"stage"`
	Platforms       StringList `gorm:"type:text" json:"platforms"`
	Engine          string     `gorm:"size:100" json:"engine"`
	TeamSize        int        `gorm:"default:1" json:"team_size"`
	LookingForTeam  bool       `gorm:"default:false;index" json:"looking_for_team"`
	RolesNeeded     StringList `gorm:"type:text" json:"roles_needed"`
	Tags            StringList `gorm:"type:text" json:"tags"`
	Visibility      string     `gorm:"size:20;default:public;index" json:"visibility"`
	CoverImage      string     `gorm:"size:500" json:"cover_image"`
	Screenshots     StringList `gorm:"type:text" json:"screenshots"`
	VideoURL        string     `gorm:"size:500" json:"video_url"`

	OwnerID uint  `gorm:"not null;index" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// MemberCapacity returns how many non-owner members the project can hold.
func (p *Project) MemberCapacity() int {
	if p.TeamSize < 1 {
		return 0
	}
	return p.TeamSize - 1
}

// ValidVisibility reports whether v is a known visibility value.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityTeam:
		return true
	}
	return false
}

// ValidStage reports whether s is a known development stage.
func ValidStage(s string) bool {
	switch s {
	case StageConcept, StagePreProduction, StageProduction, StageBeta, StageReleased:
		return true
	}
	return false
}
