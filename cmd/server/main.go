package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"github.com/navdeck/navdeck/internal/config"
	"github.com/navdeck/navdeck/internal/database"
	"github.com/navdeck/navdeck/internal/routes"
	"github.com/navdeck/navdeck/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.AuthEnabled && cfg.AuthPassword == "" {
		log.Fatal("AUTH_ENABLED=true requires a non-empty AUTH_PASSWORD")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedDefaults(db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()
	routes.Register(r, db, cfg, hub)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
