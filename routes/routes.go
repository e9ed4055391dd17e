package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealsnap-backend/config"
	"mealsnap-backend/controllers"
	"mealsnap-backend/middlewares"
)

// SetupRouter wires all endpoints. Every route under /api except
// registration and login requires a valid Bearer token.
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	authCtl *controllers.AuthController,
	mealCtl *controllers.MealController,
	userCtl *controllers.UserController,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.ImageStore == "local" {
		r.Static(cfg.UploadBaseURL, cfg.UploadDir)
	}

	authRequired := middlewares.AuthMiddleware([]byte(cfg.JWTSecret), db)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.GET("/profile", authRequired, authCtl.GetProfile)
		auth.PUT("/profile", authRequired, authCtl.UpdateProfile)
		auth.POST("/verify", authRequired, authCtl.Verify)
	}

	meals := r.Group("/api/meals")
	meals.Use(authRequired)
	{
		meals.POST("/upload", mealCtl.Upload)
		meals.POST("/analyze-image", mealCtl.AnalyzeImage)
		meals.GET("", mealCtl.List)
		meals.GET("/analytics/daily", mealCtl.DailyAnalytics)
		meals.GET("/recommendations", mealCtl.Recommendations)
		meals.GET("/health-insights", mealCtl.HealthInsights)
		meals.GET("/analysis/:id", mealCtl.MealAnalysis)
		meals.GET("/:id", mealCtl.Get)
		meals.PUT("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
	}

	users := r.Group("/api/users")
	users.Use(authRequired)
	{
		users.GET("/dashboard", userCtl.GetDashboard)
		users.GET("/analytics/weekly", userCtl.GetWeeklyAnalytics)
		users.GET("/goals/progress", userCtl.GetGoalProgress)
	}

	return r
}
