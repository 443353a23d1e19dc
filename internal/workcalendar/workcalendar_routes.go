package workcalendar

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
	workingDays := r.Group("/working-days")
	workingDays.Use(middleware.AuthMiddleware())
	{
		workingDays.GET("", middleware.RBACAuthorize(rbacService, "working-days", "read"), handler.Get)
		workingDays.PUT("", middleware.RBACAuthorize(rbacService, "working-days", "update"), handler.Update)
	}
}
