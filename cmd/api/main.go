package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nattawatz/linkboard/internal/config"
	"github.com/nattawatz/linkboard/internal/database"
	"github.com/nattawatz/linkboard/internal/logging"
	"github.com/nattawatz/linkboard/internal/routes"
	"github.com/nattawatz/linkboard/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedConfig(db); err != nil {
		log.Fatalf("config seed failed: %v", err)
	}

	hub := ws.NewTopicHub()
	go hub.Run()

	r := gin.Default()
	routes.Register(r, db, cfg, hub, logger)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
