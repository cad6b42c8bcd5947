package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures the admin authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", controller.Login)          // POST /api/v1/auth/login
		auth.POST("/refresh", controller.RefreshToken) // POST /api/v1/auth/refresh
	}
}
