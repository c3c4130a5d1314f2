// File: /routes/routes.go
package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gigtrack-api/config"
	"gigtrack-api/controllers"
	"gigtrack-api/middleware"
	"gigtrack-api/services"
)

// Services are the application services shared by the HTTP layer and the jobs
type Services struct {
	Ledger    *services.LedgerService
	Analytics *services.AnalyticsService
	Backup    *services.BackupService
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc Services) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	userController := controllers.NewUserController(db)
	carController := controllers.NewCarController(svc.Ledger)
	fuelController := controllers.NewFuelController(svc.Ledger)
	tripController := controllers.NewTripController(svc.Ledger)
	expenseController := controllers.NewExpenseController(svc.Ledger)
	analyticsController := controllers.NewAnalyticsController(svc.Analytics)
	backupController := controllers.NewBackupController(svc.Backup)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON())

	// Auth routes (public)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	{
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		protected.GET("/car", carController.GetCar)
		protected.PUT("/car", carController.SaveCar)
		protected.GET("/settings", carController.GetSettings)
		protected.PUT("/settings", carController.SaveSettings)

		fuel := protected.Group("/fuel")
		{
			fuel.GET("", fuelController.GetFuelLogs)
			fuel.POST("", fuelController.CreateFuelLog)
			fuel.DELETE("/:id", fuelController.DeleteFuelLog)
		}

		trips := protected.Group("/trips")
		{
			trips.GET("", tripController.GetTrips)
			trips.POST("", tripController.CreateTrip)
			trips.PUT("/:id", tripController.UpdateTrip)
			trips.DELETE("/:id", tripController.DeleteTrip)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", expenseController.GetExpenses)
			expenses.POST("", expenseController.CreateExpense)
			expenses.DELETE("/:id", expenseController.DeleteExpense)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/fuel-efficiency", analyticsController.GetFuelEfficiency)
			analytics.GET("/period", analyticsController.GetPeriod)
			analytics.GET("/navigate", analyticsController.Navigate)
			analytics.GET("/trips", analyticsController.GetTrips)
			analytics.GET("/weekly-goal", analyticsController.GetWeeklyGoal)
		}

		backup := protected.Group("/backup")
		{
			backup.GET("/export", backupController.Export)
			backup.POST("/import", backupController.Import)
		}
	}
}

// SetupCORS allows the configured origins and answers preflight requests
func SetupCORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSpace(o)] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowed["*"]:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
