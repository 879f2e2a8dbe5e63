package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"restaurant-manager/config"
	"restaurant-manager/database"
	"restaurant-manager/middlewares"
	"restaurant-manager/router"
	"restaurant-manager/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()

	db, demoMode, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open any database: %v", err)
	}
	if demoMode {
		utils.InfoLogger.Println("Running in demo mode on the in-memory store")
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate schema: %v", err)
	}

	r := router.SetupRouter(db, middlewares.NewRateLimiter(50))

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
