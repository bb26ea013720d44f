package routes

import (
	"time"

	"inkwell/internal/adapters/http/handlers"
	"inkwell/internal/adapters/http/middleware"
	"inkwell/internal/adapters/persistence/repositories"
	"inkwell/internal/config"
	"inkwell/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	violationRepo := repositories.NewViolationRepository(db)
	monetizationRepo := repositories.NewMonetizationRepository(db)
	postRepo := repositories.NewPostRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, violationRepo)
	enforcementService := services.NewEnforcementService(db, violationRepo)
	payoutService := services.NewPayoutService(db, monetizationRepo, postRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	enforcementHandler := handlers.NewEnforcementHandler(enforcementService)
	monetizationHandler := handlers.NewMonetizationHandler(payoutService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		enforcementHandler, monetizationHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	enforcementHandler *handlers.EnforcementHandler,
	monetizationHandler *handlers.MonetizationHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Admin routes (moderation, monetization, dashboard)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Use(middleware.NoCacheHeaders())
	setupAdminRoutes(adminRoutes, enforcementHandler, monetizationHandler, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), middleware.PrivateCacheHeaders(30*time.Second), handler.Me)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
}

// setupAdminRoutes configures moderation and monetization routes (Admin only)
func setupAdminRoutes(
	router fiber.Router,
	enforcementHandler *handlers.EnforcementHandler,
	monetizationHandler *handlers.MonetizationHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	// Enforcement
	router.Post("/enforcement/:id/action", enforcementHandler.ApplyAction)
	router.Get("/enforcement/:id/violations", enforcementHandler.ListViolations)

	// Monetization
	router.Get("/monetization/:id", monetizationHandler.GetProfile)
	router.Post("/monetization/:id/payout", monetizationHandler.ProcessPayout)
	router.Get("/monetization/:id/payouts", monetizationHandler.ListPayouts)
	router.Get("/monetization/:id/posts", monetizationHandler.ListCreatorPosts)

	// Dashboard
	router.Get("/dashboard", dashboardHandler.GetAdminDashboard)
}
