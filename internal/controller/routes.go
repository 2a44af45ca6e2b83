package controller

import (
	"strings"
	"time"

	"github.com/benbeisheim/chessvibe-backend/internal/config"
	"github.com/benbeisheim/chessvibe-backend/internal/middleware"
	"github.com/benbeisheim/chessvibe-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

// NewApp wires the REST and websocket routes onto a fiber app.
func NewApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/health", gameController.Health)

	// Set up WebSocket routes
	gameExists := func(gameID string) bool {
		_, err := gameService.GetGameState(gameID)
		return err == nil
	}
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameExists), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.AllowedOrigins,
	}))

	// Set up REST routes
	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/create", middleware.ValidateBody[CreateGameRequest](true), gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/fen", gameController.GetFEN)
	gameRoutes.Post("/:gameId/move",
		limiter.New(limiter.Config{
			Max:        cfg.MoveRate,
			Expiration: time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "rate limit exceeded",
				})
			},
		}),
		middleware.ValidateBody[MoveRequest](false),
		gameController.MakeMove,
	)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)
	gameRoutes.Get("/:gameId/pieces/:pieceId/destinations", gameController.LegalDestinations)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)

	return app
}
