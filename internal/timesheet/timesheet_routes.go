package timesheet

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
	sheets := r.Group("/timesheets")
	sheets.Use(middleware.AuthMiddleware())
	{
		sheets.POST("", middleware.RBACAuthorize(rbacService, "timesheet", "create"), handler.Create)
		sheets.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.GetAll)
		sheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.GetById)
		sheets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "timesheet", "submit"), handler.Submit)
		sheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Approve)
		sheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Reject)

		bulk := sheets.Group("")
		bulk.Use(middleware.RateLimitByUser(rate.Limit(2), 5))
		if rdb != nil {
			bulk.Use(middleware.Idempotency(rdb))
		}
		bulk.POST("/bulk-approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.BulkApprove)
		bulk.POST("/bulk-reject", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.BulkReject)
	}
}
