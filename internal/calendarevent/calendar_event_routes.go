package calendarevent

import (
	"workflowhr/internal/middleware"
	"workflowhr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	events := r.Group("/calendar-events")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.GetAll)
		events.POST("", middleware.RBACAuthorize(rbacService, "calendar", "create"), handler.Create)
		events.PUT("/:id", middleware.RBACAuthorize(rbacService, "calendar", "update"), handler.Update)
		events.DELETE("/:id", middleware.RBACAuthorize(rbacService, "calendar", "delete"), handler.Delete)
	}
}
