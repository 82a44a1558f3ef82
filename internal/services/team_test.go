package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/pkg/response"
)

func assertAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != status {
		t.Errorf("status = %d, expected %d", appErr.HTTPStatus, status)
	}
	if message != "" && appErr.Message != message {
		t.Errorf("message = %q, expected %q", appErr.Message, message)
	}
}

func TestJoin_Success(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, nil)

	member, err := svc.Join(dev.ID, project.Slug, "")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if member.Role != models.DefaultMemberRole {
		t.Errorf("role = %q, expected default %q", member.Role, models.DefaultMemberRole)
	}
	if member.User == nil || member.User.ID != dev.ID {
		t.Error("member should be returned with resolved user")
	}
	if member.Project == nil || member.Project.ID != project.ID {
		t.Error("member should be returned with resolved project")
	}
	if got := memberCount(t, db, project.ID); got != 1 {
		t.Errorf("member count = %d, expected 1", got)
	}
}

func TestJoin_CustomRole(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "artist@example.com")
	project := createProject(t, db, owner, nil)

	member, err := svc.Join(dev.ID, project.Slug, "Pixel Artist")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if member.Role != "Pixel Artist" {
		t.Errorf("role = %q, expected %q", member.Role, "Pixel Artist")
	}
}

func TestJoin_UnknownUser(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner, nil)

	_, err := svc.Join(9999, project.Slug, "")
	assertAppError(t, err, 404, "user not found")
}

func TestJoin_UnknownProject(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	dev := createUser(t, db, "dev@example.com")

	_, err := svc.Join(dev.ID, "no-such-project", "")
	assertAppError(t, err, 404, "project not found")
}

func TestJoin_OwnerCannotJoin(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner, nil)

	_, err := svc.Join(owner.ID, project.Slug, "")
	assertAppError(t, err, 400, "you are already the owner of this project")

	if got := memberCount(t, db, project.ID); got != 0 {
		t.Errorf("no membership row should be created, count = %d", got)
	}
}

func TestJoin_Twice(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, nil)

	if _, err := svc.Join(dev.ID, project.Slug, ""); err != nil {
		t.Fatalf("first Join() error = %v", err)
	}

	_, err := svc.Join(dev.ID, project.Slug, "")
	assertAppError(t, err, 400, "you are already a member of this team")

	if got := memberCount(t, db, project.ID); got != 1 {
		t.Errorf("member count = %d, expected exactly 1", got)
	}
}

func TestJoin_NotRecruiting(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, func(p *models.Project) {
		p.LookingForTeam = false
	})

	_, err := svc.Join(dev.ID, project.Slug, "")
	assertAppError(t, err, 400, "this project is not currently looking for team members")
}

func TestJoin_NeverOverbooked(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	// teamSize 3 means owner plus two members
	project := createProject(t, db, owner, func(p *models.Project) {
		p.TeamSize = 3
	})

	var failures int
	for i := 0; i < 5; i++ {
		dev := createUser(t, db, fmt.Sprintf("dev%d@example.com", i))
		if _, err := svc.Join(dev.ID, project.Slug, ""); err != nil {
			assertAppError(t, err, 400, "this team is already full")
			failures++
		}
	}

	if failures != 3 {
		t.Errorf("expected 3 rejected joins, got %d", failures)
	}
	if got := memberCount(t, db, project.ID); got != 2 {
		t.Errorf("member count = %d, expected capacity 2", got)
	}
}

func TestJoin_TeamSizeOne(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, func(p *models.Project) {
		p.TeamSize = 1 // solo project, no slots at all
	})

	_, err := svc.Join(dev.ID, project.Slug, "")
	assertAppError(t, err, 400, "this team is already full")
}

func TestLeave_InverseOfJoin(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	other := createUser(t, db, "other@example.com")
	project := createProject(t, db, owner, nil)

	if _, err := svc.Join(other.ID, project.Slug, ""); err != nil {
		t.Fatal(err)
	}
	before := memberCount(t, db, project.ID)

	if _, err := svc.Join(dev.ID, project.Slug, ""); err != nil {
		t.Fatal(err)
	}
	if err := svc.Leave(dev.ID, project.Slug); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}

	if got := memberCount(t, db, project.ID); got != before {
		t.Errorf("member count = %d, expected pre-join count %d", got, before)
	}

	// The remaining row belongs to the other member, not the leaver
	var remaining models.ProjectMember
	if err := db.Where("project_id = ?", project.ID).First(&remaining).Error; err != nil {
		t.Fatal(err)
	}
	if remaining.UserID != other.ID {
		t.Errorf("wrong membership row deleted: remaining user = %d", remaining.UserID)
	}
}

func TestLeave_OwnerCannotLeave(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, nil)

	if _, err := svc.Join(dev.ID, project.Slug, ""); err != nil {
		t.Fatal(err)
	}

	err := svc.Leave(owner.ID, project.Slug)
	assertAppError(t, err, 400, "project owners cannot leave their own project")

	if got := memberCount(t, db, project.ID); got != 1 {
		t.Errorf("member count = %d, expected untouched 1", got)
	}
}

func TestLeave_NotAMember(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	owner := createUser(t, db, "owner@example.com")
	dev := createUser(t, db, "dev@example.com")
	project := createProject(t, db, owner, nil)

	err := svc.Leave(dev.ID, project.Slug)
	assertAppError(t, err, 400, "you are not a member of this team")
}

func TestLeave_UnknownProject(t *testing.T) {
	db := testDB(t)
	svc := NewTeamService(db)

	dev := createUser(t, db, "dev@example.com")

	err := svc.Leave(dev.ID, "no-such-project")
	assertAppError(t, err, 404, "project not found")
}
