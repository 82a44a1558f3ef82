package main

import (
	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/internal/handlers"
	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/internal/services"
	"github.com/squadforge/squadforge/internal/utils"
	"github.com/squadforge/squadforge/pkg/logger"
)

// appServices holds the initialized handlers the router needs.
type appServices struct {
	authService    *services.AuthService
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	accountHandler *handlers.AccountHandler
	projectHandler *handlers.ProjectHandler
	teamHandler    *handlers.TeamHandler
	userHandler    *handlers.UserHandler
}

// bootstrap initializes all application dependencies: database, services,
// schedulers, handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	uploadSvc := services.NewUploadService(&cfg.Uploads)
	authSvc := services.NewAuthService(db, &cfg.JWT)

	services.StartTokenCleanupScheduler(authSvc)

	return &appServices{
		authService:    authSvc,
		authHandler:    handlers.NewAuthHandler(db, &cfg.JWT),
		profileHandler: handlers.NewProfileHandler(db, uploadSvc),
		accountHandler: handlers.NewAccountHandler(db),
		projectHandler: handlers.NewProjectHandler(db, uploadSvc),
		teamHandler:    handlers.NewTeamHandler(db),
		userHandler:    handlers.NewUserHandler(db),
	}
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	services.StopTokenCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")
}
