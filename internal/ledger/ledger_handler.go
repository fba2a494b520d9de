package ledger

import (
	"net/http"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("ledger request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetBalances returns the per-type balances for one employee. Employees
// may only read their own ledger; reviewers read anyone's.
func (h *Handler) GetBalances(c *gin.Context) {
	employeeID := c.Param("id")
	actorID := c.GetString("employee_id")
	role := domain.ParseRole(c.GetString("role"))

	if role == domain.RoleEmployee && actorID != employeeID {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"You may only view your own leave balances", nil)
		return
	}

	resp, err := h.service.Balances(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Provision sets one balance cell to an absolute value. Route access
// is restricted to admins by the RBAC policy.
func (h *Handler) Provision(c *gin.Context) {
	employeeID := c.Param("id")
	leaveType := c.Param("type")

	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http provision balance validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Provision(c.Request.Context(), employeeID, leaveType, req.Days)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
