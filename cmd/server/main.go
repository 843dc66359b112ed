package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/ktaneda/rental-ledger-api/internal/config"
	"github.com/ktaneda/rental-ledger-api/internal/constants"
	"github.com/ktaneda/rental-ledger-api/internal/database"
	"github.com/ktaneda/rental-ledger-api/internal/handlers"
	"github.com/ktaneda/rental-ledger-api/internal/middleware"
	"github.com/ktaneda/rental-ledger-api/internal/repository"
	"github.com/ktaneda/rental-ledger-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// The signing secret is loaded (or generated and persisted) before any
	// session machinery exists, so every later access is a plain read.
	secret, err := config.LoadOrCreateSessionSecret(cfg.SecretFile)
	if err != nil {
		log.Fatalf("Failed to load session secret: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Session cookies are HMAC-signed with the persisted secret; the cookie
	// itself is the opaque session token.
	store := cookie.NewStore(secret)
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authService := services.NewAuthService(userRepo)
	rentalService := services.NewRentalService(rentalRepo)
	profileService := services.NewProfileService(profileRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	rentalHandler := handlers.NewRentalHandler(rentalService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Rental Ledger API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.POST("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Rental routes (protected)
		rentals := api.Group("/rentals")
		rentals.Use(middleware.RequireAuth())
		{
			rentals.GET("", rentalHandler.ListRentals)
			rentals.POST("", rentalHandler.CreateRental)
			rentals.GET("/:id", middleware.RequireRentalAccess(), rentalHandler.GetRental)
			rentals.PATCH("/:id", middleware.RequireRentalAccess(), rentalHandler.UpdateRental)
			rentals.POST("/:id/payments", middleware.RequireRentalAccess(), rentalHandler.RecordPayment)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PATCH("", profileHandler.UpdateProfile)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
