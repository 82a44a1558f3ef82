package main

import (
	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/internal/middleware"
	"github.com/squadforge/squadforge/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewClientLimiter(&cfg.RateLimit)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "squadforge"})
	})

	// Uploaded avatars and project media
	r.Static(cfg.Uploads.PublicURL, cfg.Uploads.Dir)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/oauth", svc.authHandler.OAuthExchange)
			auth.POST("/refresh", svc.authHandler.Refresh)
		}

		// Public reads; a bearer token widens visibility when present
		public := api.Group("")
		public.Use(middleware.AuthOptional())
		{
			public.GET("/projects", svc.projectHandler.List)
			public.GET("/projects/:slug", svc.projectHandler.GetBySlug)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Session
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Own profile
			protected.GET("/profile", svc.profileHandler.Get)
			protected.PUT("/profile", svc.profileHandler.Update)
			protected.POST("/profile/image", svc.profileHandler.UploadImage)

			// Account settings
			protected.GET("/settings", svc.accountHandler.GetSettings)
			protected.PUT("/settings", svc.accountHandler.UpdateSettings)
			protected.DELETE("/settings/account", svc.accountHandler.DeleteAccount)

			// Projects
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:slug", svc.projectHandler.Update)
			protected.DELETE("/projects/:slug", svc.projectHandler.Delete)
			protected.POST("/projects/media", svc.projectHandler.UploadMedia)

			// Team membership
			protected.POST("/projects/:slug/join", svc.teamHandler.Join)
			protected.POST("/projects/:slug/leave", svc.teamHandler.Leave)

			// Directory and public profiles
			protected.GET("/teammates", svc.userHandler.SearchTeammates)
			protected.GET("/users/:id", svc.userHandler.GetProfile)
		}
	}
}
