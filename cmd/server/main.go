package main

import (
	"log"
	"net/http"

	"github.com/abdullahikhalilmuaz/project-server/internal/cache"
	"github.com/abdullahikhalilmuaz/project-server/internal/config"
	"github.com/abdullahikhalilmuaz/project-server/internal/database"
	"github.com/abdullahikhalilmuaz/project-server/internal/handler"
	"github.com/abdullahikhalilmuaz/project-server/internal/middleware"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Redis backs the topic view cache and the auth rate limiter
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	topicViews := cache.NewTopicViewCache(redisClient, cfg.TopicCacheTTL)
	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	topicRepo := repository.NewTopicRepository(database.DB)
	proposalRepo := repository.NewProposalRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	topicService := service.NewTopicService(topicRepo, topicViews)
	proposalService := service.NewProposalService(proposalRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	topicHandler := handler.NewTopicHandler(topicService)
	proposalHandler := handler.NewProposalHandler(proposalService)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Server is running",
		})
	})

	// Auth routes (rate limited)
	auth := router.Group("/api/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Topic catalog
	topics := router.Group("/api/topics")
	{
		topics.GET("", topicHandler.List)
		topics.GET("/trending", topicHandler.GetTrending)
		topics.GET("/category/:category", topicHandler.GetByCategory)
		topics.GET("/:id", topicHandler.GetByID)
		topics.POST("", topicHandler.Create)
		topics.PUT("/:id", topicHandler.Update)
		topics.DELETE("/:id", topicHandler.Delete)
	}

	// Proposals
	proposals := router.Group("/api/proposals")
	{
		proposals.POST("/submit", proposalHandler.Submit)
		proposals.GET("/admin/all", proposalHandler.GetAll)
		proposals.GET("/user/:userId", proposalHandler.GetByUser)
		proposals.GET("/:id", proposalHandler.GetByID)
		proposals.PUT("/admin/update/:id", proposalHandler.UpdateStatus)
		proposals.DELETE("/:id", proposalHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
