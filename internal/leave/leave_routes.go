package leave

import (
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/middleware"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)

		// Bulk decisions are the expensive path: one transaction per id.
		bulk := requests.Group("")
		bulk.Use(middleware.RateLimitByUser(rate.Limit(2), 5))
		if rdb != nil {
			bulk.Use(middleware.Idempotency(rdb))
		}
		bulk.POST("/bulk-approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.BulkApprove)
		bulk.POST("/bulk-reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.BulkReject)
	}
}
