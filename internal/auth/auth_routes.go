package auth

import (
	"workflowhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitByIP(5, 10))
	{
		authGroup.POST("/signup", handler.Signup)
		authGroup.POST("/login", handler.Login)
	}
}
