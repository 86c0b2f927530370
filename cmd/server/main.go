package main

import (
	"net/http"
	"os"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/api"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/handler"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/logger"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize SaaS clients (Cloudinary, weather, push, assistant)
	handler.InitServices(cfg)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
