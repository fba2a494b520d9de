package audit

import (
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/middleware"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	entries := r.Group("/audit-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.ListByRequest)
	}
}
