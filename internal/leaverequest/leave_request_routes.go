package leaverequest

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
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "leave-request", "create"),
			middleware.Idempotency(redisClient),
			handler.Submit,
		)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave-request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave-request", "read"), handler.GetByID)
		requests.PATCH("/:id/team-lead-decision", middleware.RBACAuthorize(rbacService, "leave-request", "decide-lead"), handler.DecideByTeamLead)
		requests.PATCH("/:id/hr-decision", middleware.RBACAuthorize(rbacService, "leave-request", "decide-hr"), handler.DecideByHR)
	}
}
