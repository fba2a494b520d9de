package audit

import (
	"net/http"

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
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) ListByRequest(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "request_id query parameter is required", nil)
		return
	}

	resp, err := h.service.ListByRequest(c.Request.Context(), requestID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("audit request failed",
			zap.String("request_id", requestID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
