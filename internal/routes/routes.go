package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/hidrata/quest-backend/internal/config"
	"github.com/hidrata/quest-backend/internal/handlers"
	"github.com/hidrata/quest-backend/internal/middleware"
	"github.com/hidrata/quest-backend/internal/services"
	"gorm.io/gorm"
)

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	// Services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, cfg)
	profileService := services.NewProfileService(db)
	historyService := services.NewHistoryService(db)
	questService := services.NewQuestService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	historyHandler := handlers.NewHistoryHandler(profileService, historyService)
	questHandler := handlers.NewQuestHandler(questService)
	healthHandler := handlers.NewHealthHandler(db)

	// General rate limiter, per IP
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	app.Post("/users", userHandler.Register)

	// Everything below requires a bearer token resolving to a live user.
	// The gate is attached per route so public routes stay unaffected.
	protected := middleware.JWTProtected(cfg, authService)

	app.Patch("/users/:id", protected, userHandler.Update)

	perfil := app.Group("/perfil", protected)
	perfil.Get("/", profileHandler.Get)
	perfil.Post("/", profileHandler.Create)
	perfil.Patch("/", profileHandler.Update)
	perfil.Get("/metas", profileHandler.Targets)
	perfil.Get("/quests", questHandler.List)
	perfil.Post("/quests/:id/resgatar", questHandler.Claim)

	historico := app.Group("/historico", protected)
	historico.Get("/", historyHandler.List)
	historico.Get("/resumo", historyHandler.Summary)
	historico.Post("/", historyHandler.Create)
	historico.Delete("/:id", historyHandler.Delete)
}
