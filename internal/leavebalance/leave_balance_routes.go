package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "leave-balance", "read"), handler.GetForEmployee)
	}

	admin := r.Group("/admin/leave-balances")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("/cleanup", middleware.RBACAuthorize(rbacService, "leave-balance", "cleanup"), handler.Cleanup)
	}
}
