package services

import (
	"github.com/squadforge/squadforge/internal/models"
)

// AccessReason describes why project access was denied.
type AccessReason string

const (
	AccessGranted       AccessReason = ""
	AccessDeniedPrivate AccessReason = "private"
	AccessDeniedTeam    AccessReason = "team"
)

// ProjectAccess is the result of resolving a requester against a project's
// visibility. Pure data; no side effects.
type ProjectAccess struct {
	Granted  bool
	Reason   AccessReason
	IsOwner  bool
	IsMember bool
}

// ResolveProjectAccess decides whether requesterID may view the project.
// requesterID 0 means anonymous. The project's Members must already be
// loaded.
//
//   - public: anyone, including anonymous
//   - private: owner only
//   - team: owner or current member
func ResolveProjectAccess(requesterID uint, project *models.Project) ProjectAccess {
	access := ProjectAccess{
		IsOwner: requesterID != 0 && requesterID == project.OwnerID,
	}
	for _, m := range project.Members {
		if requesterID != 0 && m.UserID == requesterID {
			access.IsMember = true
			break
		}
	}

	switch project.Visibility {
	case models.VisibilityPrivate:
		if !access.IsOwner {
			access.Reason = AccessDeniedPrivate
			return access
		}
	case models.VisibilityTeam:
		if !access.IsOwner && !access.IsMember {
			access.Reason = AccessDeniedTeam
			return access
		}
	}

	access.Granted = true
	return access
}
