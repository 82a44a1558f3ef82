package services

import (
	"github.com/robfig/cron/v3"
	"github.com/squadforge/squadforge/pkg/logger"
)

var tokenCleanupCron *cron.Cron

// StartTokenCleanupScheduler deletes expired refresh tokens once a day.
func StartTokenCleanupScheduler(authSvc *AuthService) {
	tokenCleanupCron = cron.New()

	_, err := tokenCleanupCron.AddFunc("30 3 * * *", func() {
		deleted, err := authSvc.CleanupExpiredRefreshTokens()
		if err != nil {
			logger.Error().Err(err).Msg("refresh token cleanup failed")
			return
		}
		if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("expired refresh tokens removed")
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule refresh token cleanup")
		return
	}

	tokenCleanupCron.Start()
	logger.Info().Msg("refresh token cleanup scheduler started")
}

// StopTokenCleanupScheduler stops the cleanup scheduler.
func StopTokenCleanupScheduler() {
	if tokenCleanupCron != nil {
		tokenCleanupCron.Stop()
	}
}
