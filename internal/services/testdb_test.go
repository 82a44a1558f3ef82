package services

import (
	"path/filepath"
	"testing"

	"github.com/squadforge/squadforge/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens a throwaway sqlite database migrated with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.OAuthAccount{},
		&models.RefreshToken{},
		&models.Project{},
		&models.ProjectMember{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createProject(t *testing.T, db *gorm.DB, owner *models.User, mutate func(*models.Project)) *models.Project {
	t.Helper()
	project := &models.Project{
		Slug:           "test-project",
		Name:           "Test Project",
		Genre:          "RPG",
		Stage:          models.StageConcept,
		TeamSize:       4,
		LookingForTeam: true,
		Visibility:     models.VisibilityPublic,
		OwnerID:        owner.ID,
	}
	if mutate != nil {
		mutate(project)
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func memberCount(t *testing.T, db *gorm.DB, projectID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	return count
}
