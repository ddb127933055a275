package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"trip-planner/internal/adapters/http/middleware"
	"trip-planner/internal/adapters/http/routes"
	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/config"
	"trip-planner/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "trip-planner/docs" // Swagger docs
)

// @title Trip Planner API
// @version 1.0
// @description Trip planning backend with JWT authentication
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@tripplanner.app

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default roles and admin account
	seeder := config.NewSeeder(db)
	if err := seeder.Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// File storage for trip images
	fileService, err := services.NewFileService(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("❌ Failed to initialize file storage: %v", err)
	}

	// Daily cleanup of orphaned trip images (03:00)
	cleanupService := services.NewCleanupService(repositories.NewTripRepository(db), fileService)
	if err := cleanupService.Start(); err != nil {
		log.Printf("⚠️ Warning: Failed to start cleanup job: %v", err)
	}
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Trip Planner API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, fileService)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
