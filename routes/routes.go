package routes

import (
	"os"

	"github.com/Adarsh-512/ShopSphere/controllers"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Session middleware carries the registration flow between requests
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "shopsphere-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   os.Getenv("GIN_MODE") == "release",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("shopsphere", store))

	// OAuth routes live outside the versioned API
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
