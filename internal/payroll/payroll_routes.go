package payroll

import (
	"workflowhr/internal/middleware"
	"workflowhr/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	slips := r.Group("/salary-slips")
	slips.Use(middleware.AuthMiddleware())
	{
		slips.POST("",
			middleware.RBACAuthorize(rbacService, "salary-slip", "create"),
			middleware.Idempotency(redisClient),
			handler.Generate,
		)
		slips.GET("", middleware.RBACAuthorize(rbacService, "salary-slip", "read"), handler.GetAll)
		slips.GET("/:id", middleware.RBACAuthorize(rbacService, "salary-slip", "read"), handler.GetByID)
		slips.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "salary-slip", "read"), handler.DownloadPayslip)
	}
}
