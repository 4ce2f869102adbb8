package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bigwin-backend/internal/config"
	"bigwin-backend/internal/handlers"
	"bigwin-backend/internal/middleware"
	"bigwin-backend/internal/services"
	"bigwin-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	accountStore, err := store.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer accountStore.Close()

	feedHandler := handlers.NewFeedHandler()

	accountService := services.NewAccountService(accountStore)
	bonusEngine := services.NewBonusEngine(accountStore, feedHandler)
	wagerEngine := services.NewWagerEngine(accountStore, feedHandler)
	queryService := services.NewQueryService(accountStore, cfg.RefLinkBase)

	userHandler := handlers.NewUserHandler(accountService, bonusEngine, queryService)
	gameHandler := handlers.NewGameHandler(wagerEngine)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(middleware.RequestID())

	user := router.Group("/user")
	{
		user.GET("/profile", userHandler.GetProfile)
		user.POST("/bonus", userHandler.ClaimBonus)
		user.GET("/history", userHandler.GetHistory)
		user.GET("/referrals", userHandler.GetReferrals)
	}

	router.GET("/ranking", userHandler.GetRanking)
	router.POST("/game/:game", gameHandler.Play)
	router.GET("/ws/feed", feedHandler.HandleFeed)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
