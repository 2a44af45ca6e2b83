package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chessvibe-backend/internal/config"
	"github.com/benbeisheim/chessvibe-backend/internal/controller"
	"github.com/benbeisheim/chessvibe-backend/internal/service"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(cfg, gameService)

	go func() {
		log.Printf("Listening on %s (origins %v, dev=%v)", cfg.Addr, cfg.AllowedOrigins, cfg.Dev)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Printf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Printf("Server exited with %d games in memory", gameManager.GameCount())
}
