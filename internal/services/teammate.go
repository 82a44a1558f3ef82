package services

import (
	"strings"

	"github.com/squadforge/squadforge/internal/models"
	"gorm.io/gorm"
)

// TeammateService implements the teammate-search directory.
type TeammateService struct {
	db *gorm.DB
}

func NewTeammateService(db *gorm.DB) *TeammateService {
	return &TeammateService{db: db}
}

type TeammateSearchRequest struct {
	Search       string `form:"search"`
	Skills       string `form:"skills"` // comma-separated skill names
	Availability string `form:"availability" binding:"omitempty,oneof=available busy open_to_offers"`
	Experience   string `form:"experience" binding:"omitempty,oneof=beginner intermediate expert"`
}

// SkillNames splits the comma-separated skills parameter, dropping empties.
func (r *TeammateSearchRequest) SkillNames() []string {
	if r.Skills == "" {
		return nil
	}
	parts := strings.Split(r.Skills, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// Search returns users flagged as looking for a team, excluding the
// requester, filtered and ordered most-recently-updated first.
//
// Structured predicates run in the query; the skill filter runs in memory
// because skills live in an encoded column. A user matches the skill
// filter when any requested skill has a rating greater than zero (OR
// semantics); users whose stored skills fail to decode match nothing.
func (s *TeammateService) Search(req *TeammateSearchRequest, requesterID uint) ([]models.User, error) {
	query := s.db.Model(&models.User{}).Where("looking_for_team = ?", true)

	if requesterID != 0 {
		query = query.Where("id <> ?", requesterID)
	}
	if req.Availability != "" {
		query = query.Where("availability_status = ?", req.Availability)
	}
	if req.Experience != "" {
		query = query.Where("experience = ?", req.Experience)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(bio) LIKE ? OR LOWER(skills) LIKE ?",
			like, like, like, like,
		)
	}

	var users []models.User
	if err := query.Order("updated_at DESC, created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	skillNames := req.SkillNames()
	if len(skillNames) == 0 {
		return users, nil
	}

	matched := make([]models.User, 0, len(users))
	for _, u := range users {
		if hasAnySkill(u.Skills, skillNames) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func hasAnySkill(skills models.SkillMap, names []string) bool {
	if len(skills) == 0 {
		return false
	}
	for _, name := range names {
		if rating, ok := skills[name]; ok && rating > 0 {
			return true
		}
	}
	return false
}
