package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"alfredoptarigan/ai-interview/internal/config"
	"alfredoptarigan/ai-interview/internal/handlers"
	"alfredoptarigan/ai-interview/internal/middleware"
	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/services"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Upload    *handlers.UploadHandler
	Interview *handlers.InterviewHandler
}

func Setup(app *fiber.App, cfg *config.Config, tokens *services.TokenManager, h Handlers) {
	api := app.Group("/api")

	api.Get("/health", h.Health.HandleHealth)

	authLimiter := limiter.New(limiter.Config{
		Max:               cfg.Auth.RateLimit,
		Expiration:        cfg.Auth.RateLimitSpan,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, try again later",
				Code:  fiber.StatusTooManyRequests,
			})
		},
	})
	api.Post("/register", authLimiter, h.Auth.HandleRegister)
	api.Post("/login", authLimiter, h.Auth.HandleLogin)

	protected := middleware.JWTProtected(tokens)
	api.Post("/upload-resume", protected, h.Upload.HandleUploadResume)
	api.Post("/start-interview", protected, h.Interview.HandleStart)
	api.Post("/submit-response", protected, h.Interview.HandleSubmitResponse)
	api.Get("/interview-history", protected, h.Interview.HandleHistory)
	api.Get("/interview/:id", protected, h.Interview.HandleGetInterview)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/register",
				"POST /api/login",
				"POST /api/upload-resume",
				"POST /api/start-interview",
				"POST /api/submit-response",
				"GET /api/interview-history",
				"GET /api/interview/:id",
			},
		})
	})
}
