package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handlers"
	"github.com/portfolio/backend/internal/imaging"
	"github.com/portfolio/backend/internal/middleware"
	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatalf("Failed to init S3 service: %v", err)
	}
	lowres := imaging.NewGenerator(cfg.PlaceholderTargetWidth, cfg.PlaceholderBlurRadius, cfg.PlaceholderQuality)
	imageService := services.NewImageService(db, s3Service, lowres)
	galleryService := services.NewGalleryService(db, imageService)
	aboutService := services.NewAboutService(db, s3Service, galleryService)
	contactService := services.NewContactService(db)
	projectService := services.NewProjectService(db, s3Service, galleryService, cfg.DefaultSourceLang)
	authService := services.NewAuthService(db, cfg)

	// Create admin user if not exists
	if err := authService.EnsureDefaultAdmin(); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	aboutHandler := handlers.NewAboutHandler(aboutService, s3Service)
	contactHandler := handlers.NewContactHandler(contactService)
	projectHandler := handlers.NewProjectHandler(projectService, s3Service, cfg.UploadMaxImageSize)

	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
		}

		// Public reads
		api.GET("/about", aboutHandler.List)
		api.GET("/about/:id", aboutHandler.Get)
		api.GET("/contact", contactHandler.List)
		api.GET("/contact/:id", contactHandler.Get)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)

		// Authenticated writes, admins only
		write := api.Group("")
		write.Use(middleware.Auth(authService), middleware.AdminOnly())
		{
			write.POST("/about", aboutHandler.Create)
			write.PUT("/about/:id", aboutHandler.Update)
			write.DELETE("/about/:id", aboutHandler.Delete)

			write.POST("/contact", contactHandler.Create)
			write.PUT("/contact/:id", contactHandler.Update)
			write.DELETE("/contact/:id", contactHandler.Delete)

			write.POST("/projects", projectHandler.Create)
			write.PUT("/projects/:id", projectHandler.Update)
			write.DELETE("/projects/:id", projectHandler.Delete)
			write.POST("/projects/reorder", projectHandler.Reorder)
			write.POST("/projects/:id/upload_image", projectHandler.UploadImage)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
