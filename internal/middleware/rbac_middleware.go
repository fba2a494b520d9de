package middleware

import (
	"net/http"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/rbac"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on the coarse resource:action permission
// of the caller's role. Per-request review scoping happens later in the
// service layer.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Permission check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}

		c.Next()
	}
}
