package main

import (
	"fmt"
	"os"
	"time"

	redisclient "github.com/equify/equify-backend/internal/clients/redis"
	"github.com/equify/equify-backend/internal/db"
	"github.com/equify/equify-backend/internal/handlers"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/middleware"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/server"
	"github.com/equify/equify-backend/internal/services"
	"github.com/equify/equify-backend/internal/sse"
	"github.com/equify/equify-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	relationshipRepo := repos.NewRelationshipRepo(thePG, log)
	favorRepo := repos.NewFavorRepo(thePG, log)
	recommendationRepo := repos.NewRecommendationRepo(thePG, log)
	insightRepo := repos.NewAIInsightRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)

	// Redis stats cache. Optional: the dashboard works without it, it just
	// recomputes every request.
	statsCache, err := redisclient.NewStatsCache(log)
	if err != nil {
		log.Warn("Could not init StatsCache; dashboard caching disabled", "error", err)
		statsCache = nil
	}

	// OpenAI client. Optional at startup: without a key the generate endpoint
	// reports a config error, everything else keeps working.
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Warn("Could not init OpenAIClient; recommendation generation disabled", "error", err)
		openaiClient = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, profileRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	profileService := services.NewProfileService(thePG, log, profileRepo)
	relationshipService := services.NewRelationshipService(thePG, log, relationshipRepo, favorRepo, sseHub, statsCache)
	favorService := services.NewFavorService(thePG, log, favorRepo, relationshipRepo, sseHub, statsCache)
	recommendationService := services.NewRecommendationService(
		thePG,
		log,
		relationshipRepo,
		favorRepo,
		profileRepo,
		recommendationRepo,
		insightRepo,
		openaiClient,
		sseHub,
		statsCache,
	)
	insightService := services.NewInsightService(thePG, log, insightRepo)
	dashboardService := services.NewDashboardService(thePG, log, relationshipRepo, favorRepo, recommendationRepo, statsCache)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(log, profileService)
	relationshipHandler := handlers.NewRelationshipHandler(log, relationshipService)
	favorHandler := handlers.NewFavorHandler(log, favorService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	insightHandler := handlers.NewInsightHandler(log, insightService)
	dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)
	sseHandler := handlers.NewSSEHandler(log, sseHub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		ProfileHandler:        profileHandler,
		RelationshipHandler:   relationshipHandler,
		FavorHandler:          favorHandler,
		RecommendationHandler: recommendationHandler,
		InsightHandler:        insightHandler,
		DashboardHandler:      dashboardHandler,
		SSEHandler:            sseHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
