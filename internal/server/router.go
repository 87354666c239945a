package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/equify/equify-backend/internal/handlers"
	"github.com/equify/equify-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	ProfileHandler        *handlers.ProfileHandler
	RelationshipHandler   *handlers.RelationshipHandler
	FavorHandler          *handlers.FavorHandler
	RecommendationHandler *handlers.RecommendationHandler
	InsightHandler        *handlers.InsightHandler
	DashboardHandler      *handlers.DashboardHandler
	SSEHandler            *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	// Profile
	protected.GET("/api/profile", cfg.ProfileHandler.Get)
	protected.PUT("/api/profile", cfg.ProfileHandler.Update)
	// Relationships
	protected.POST("/api/relationships", cfg.RelationshipHandler.Create)
	protected.GET("/api/relationships", cfg.RelationshipHandler.List)
	protected.GET("/api/relationships/:id", cfg.RelationshipHandler.Get)
	protected.PUT("/api/relationships/:id", cfg.RelationshipHandler.Update)
	protected.DELETE("/api/relationships/:id", cfg.RelationshipHandler.Delete)
	protected.GET("/api/relationships/:id/balance", cfg.RelationshipHandler.Balance)
	// Favors
	protected.POST("/api/favors", cfg.FavorHandler.Log)
	protected.GET("/api/favors", cfg.FavorHandler.List)
	protected.PATCH("/api/favors/:id/reciprocated", cfg.FavorHandler.SetReciprocated)
	// Recommendations
	protected.POST("/api/recommendations/generate", cfg.RecommendationHandler.Generate)
	protected.GET("/api/recommendations", cfg.RecommendationHandler.List)
	protected.POST("/api/recommendations", cfg.RecommendationHandler.Create)
	protected.PATCH("/api/recommendations/:id/complete", cfg.RecommendationHandler.Complete)
	protected.PATCH("/api/recommendations/:id/snooze", cfg.RecommendationHandler.Snooze)
	protected.DELETE("/api/recommendations/:id", cfg.RecommendationHandler.Dismiss)
	// Insights
	protected.GET("/api/insights", cfg.InsightHandler.List)
	protected.PATCH("/api/insights/:id/acted-upon", cfg.InsightHandler.MarkActedUpon)
	// Dashboard
	protected.GET("/api/dashboard/stats", cfg.DashboardHandler.Stats)

	return router
}
