package routes

import (
	"trip-planner/internal/adapters/http/handlers"
	"trip-planner/internal/adapters/http/middleware"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/config"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, fileService *services.FileService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	tripRepo := repositories.NewTripRepository(db)
	itineraryRepo := repositories.NewItineraryRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, roleRepo, cfg)
	userService := services.NewUserService(userRepo)
	roleService := services.NewRoleService(roleRepo, userRepo)
	tripService := services.NewTripService(tripRepo, itineraryRepo, userRepo)
	itineraryService := services.NewItineraryService(itineraryRepo, tripRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService)
	tripHandler := handlers.NewTripHandler(tripService, fileService)
	itineraryHandler := handlers.NewItineraryHandler(itineraryService)

	// Every request passes through principal resolution exactly once.
	// Failures fall through to an anonymous request; the route class
	// attached below decides whether that is enough.
	app.Use(middleware.Authenticate(authService))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/refresh", authHandler.Refresh)

	// Trip routes. Listing and single-trip summaries are public; anything
	// touching a trip's contents requires a principal. Keyword routes are
	// registered before /:id so Fiber never captures them as IDs.
	trips := api.Group("/trips")
	trips.Get("/my-trips", middleware.RequireAuth(), tripHandler.MyTrips)
	trips.Get("/dashboard", middleware.RequireAuth(), tripHandler.Dashboard)
	trips.Get("/itinerary", middleware.RequireAuth(), tripHandler.Itinerary)
	trips.Get("/activities", middleware.RequireAuth(), tripHandler.Activities)
	trips.Get("/images/:filename", tripHandler.Image)
	trips.Get("/", tripHandler.List)
	trips.Post("/", middleware.RequireAuth(), tripHandler.Create)
	trips.Get("/:id", tripHandler.Get)
	trips.Put("/:id", middleware.RequireAuth(), tripHandler.Update)
	trips.Delete("/:id", middleware.RequireAuth(), tripHandler.Delete)
	trips.Get("/:id/details", middleware.RequireAuth(), tripHandler.Details)
	trips.Post("/:id/itinerary", middleware.RequireAuth(), tripHandler.AddItineraryItem)
	trips.Post("/:id/collaborators/:userId", middleware.RequireAuth(), tripHandler.AddCollaborator)
	trips.Delete("/:id/collaborators/:userId", middleware.RequireAuth(), tripHandler.RemoveCollaborator)

	// Itinerary routes (authenticated; ownership checked per trip)
	itinerary := api.Group("/itinerary", middleware.RequireAuth())
	itinerary.Get("/trip/:tripId", itineraryHandler.ListForTrip)
	itinerary.Get("/:id", itineraryHandler.Get)
	itinerary.Patch("/:id", itineraryHandler.Update)
	itinerary.Delete("/:id", itineraryHandler.Delete)
	itinerary.Post("/:id/activities", itineraryHandler.AddActivity)
	itinerary.Put("/activities/:activityId", itineraryHandler.UpdateActivity)
	itinerary.Delete("/activities/:activityId", itineraryHandler.DeleteActivity)

	// Role administration (ADMIN only)
	roles := api.Group("/roles", middleware.RequireRoles(authz.RoleAdmin))
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Get("/:id", roleHandler.Get)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)
	roles.Post("/:id/users/:userId", roleHandler.AssignToUser)
	roles.Delete("/:id/users/:userId", roleHandler.RemoveFromUser)

	// User administration (ADMIN only)
	users := api.Group("/users", middleware.RequireRoles(authz.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
}
