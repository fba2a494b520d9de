package ledger

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id/leave-balances", middleware.RBACAuthorize(rbacService, "ledger", "read"), handler.GetBalances)
		employees.PUT("/:id/leave-balances/:type", middleware.RBACAuthorize(rbacService, "ledger", "provision"), handler.Provision)
	}
}
