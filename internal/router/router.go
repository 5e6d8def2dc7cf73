package router

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/avida-market/gateway/internal/handlers"
	"github.com/anonto42/avida-market/gateway/internal/middleware"
	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/anonto42/avida-market/gateway/internal/repositories"
	"github.com/anonto42/avida-market/gateway/internal/sandbox"
	"github.com/anonto42/avida-market/gateway/internal/settings"
	"github.com/anonto42/avida-market/gateway/internal/upstream"
	"github.com/anonto42/avida-market/gateway/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.SandboxSession{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Hello, World!"})
	})

	// --- Upstream client and repositories ---
	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL, time.Duration(cfg.UpstreamTimeoutSeconds)*time.Second)
	sessionRepo := repositories.NewPostgresSessionRepository(pgdb)
	resolutionRepo := repositories.NewMongoResolutionRepository(mgClient.Database("marketplace"))

	// --- Sandbox store and request router ---
	sandboxStore := sandbox.NewStore(upstreamClient, sessionRepo, cfg.SandboxAdminID)
	sandboxStore.Recheck(context.Background())
	sandboxRouter := sandbox.NewRouter(sandboxStore, upstreamClient)

	// --- Feature settings cache ---
	settingsCache := settings.NewCache(upstreamClient, time.Duration(cfg.FeatureSettingsTTLSeconds)*time.Second)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(cfg.SandboxAdminID, cfg.AdminEmail, cfg.AdminPasswordHash)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Consumer routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// Resource routes
	resourceHandler := handlers.NewResourceHandler(sandboxRouter)
	resourceHandler.RegisterResourceRoutes(api)
	log.Println("Resource routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(sandboxRouter, settingsCache, cfg.BannerInterval)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(upstreamClient, resolutionRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Feature settings routes
	settingsHandler := handlers.NewSettingsHandler(settingsCache)
	settingsHandler.RegisterSettingsRoutes(api)
	log.Println("Feature settings routes configured.")

	// --- Admin routes (require dashboard JWT) ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.AdminJWTMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1/admin group.")

	sandboxHandler := handlers.NewSandboxHandler(sandboxStore)
	sandboxHandler.RegisterSandboxRoutes(admin)
	notificationHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
