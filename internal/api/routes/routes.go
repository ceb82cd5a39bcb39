package routes

import (
	"parking-backend/internal/api/handlers"
	"parking-backend/internal/api/middleware"
	"parking-backend/internal/config"
	"parking-backend/internal/repository"
	"parking-backend/internal/services"
	"parking-backend/pkg/cache"
	"parking-backend/pkg/ratelimit"
	"parking-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	typeRepo := repository.NewVehicleTypeRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	typeService := services.NewVehicleTypeService(typeRepo, tariffRepo, vehicleRepo)
	tariffService := services.NewTariffService(tariffRepo, typeRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, typeRepo)
	txService := services.NewTransactionService(txRepo, typeRepo, vehicleRepo, tariffService)
	backupService := services.NewBackupService(db, backupRepo, cfg.BackupDir)

	// Redis is optional: without it resolution reads Mongo every time
	if redisClient != nil {
		cacheManager := cache.NewRedisCacheManager(redisClient, cache.DefaultCacheConfig())
		tariffService.SetCacheManager(cacheManager)
		typeService.SetCacheManager(cacheManager)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	typeHandler := handlers.NewVehicleTypeHandler(typeService)
	tariffHandler := handlers.NewTariffHandler(tariffService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	txHandler := handlers.NewTransactionHandler(txService)
	backupHandler := handlers.NewBackupHandler(backupService)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	loginLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultConfig())

	// API routes
	api := router.Group("/api/v1")

	api.GET("/health", healthHandler.Health)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)

		// Users, admin only
		users := protected.Group("/users")
		users.Use(middleware.RequireRole("admin"))
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Vehicle types, writes admin only
		types := protected.Group("/vehicle-types")
		{
			types.GET("", typeHandler.GetVehicleTypes)
			types.GET("/:id", typeHandler.GetVehicleType)
			types.POST("", middleware.RequireRole("admin"), typeHandler.CreateVehicleType)
			types.PATCH("/:id", middleware.RequireRole("admin"), typeHandler.UpdateVehicleType)
			types.DELETE("/:id", middleware.RequireRole("admin"), typeHandler.DeleteVehicleType)
		}

		// Tariff rules, writes admin only
		tariffs := protected.Group("/tariffs")
		{
			tariffs.GET("", tariffHandler.GetTariffs)
			tariffs.GET("/quote", tariffHandler.GetQuote)
			tariffs.GET("/:id", tariffHandler.GetTariff)
			tariffs.POST("", middleware.RequireRole("admin"), tariffHandler.CreateTariff)
			tariffs.PATCH("/:id", middleware.RequireRole("admin"), tariffHandler.UpdateTariff)
			tariffs.DELETE("/:id", middleware.RequireRole("admin"), tariffHandler.DeleteTariff)
		}

		// Registered vehicles and memberships
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
			vehicles.POST("/:id/memberships", vehicleHandler.AddMembership)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		// Parking transactions
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", txHandler.GetTransactions)
			transactions.GET("/:id", txHandler.GetTransaction)
			transactions.POST("/check-in", txHandler.CheckIn)
			transactions.POST("/:id/check-out", txHandler.CheckOut)
			transactions.POST("/:id/cancel", txHandler.Cancel)
		}

		// Backups, admin only
		backups := protected.Group("/backups")
		backups.Use(middleware.RequireRole("admin"))
		{
			backups.GET("", backupHandler.GetBackups)
			backups.POST("", backupHandler.RunBackup)
			backups.DELETE("/:id", backupHandler.DeleteBackup)
		}
	}
}
