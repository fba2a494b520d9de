package timesheet

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis additionally caches bulk decision results under
// the caller's idempotency key.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func reviewerFromContext(c *gin.Context) domain.Reviewer {
	return domain.Reviewer{
		ID:           c.GetString("employee_id"),
		Role:         domain.ParseRole(c.GetString("role")),
		DepartmentID: c.GetString("department_id"),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timesheet request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor := reviewerFromContext(c)

	var req CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create timesheet validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor := reviewerFromContext(c)

	resp, err := h.service.GetAll(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	actor := reviewerFromContext(c)
	targetID := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), actor, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	actor := reviewerFromContext(c)
	id := c.Param("id")

	resp, err := h.service.Submit(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	reviewer := reviewerFromContext(c)
	id := c.Param("id")

	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http approve timesheet validation failed", zap.Error(err))
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
			return
		}
	}

	resp, err := h.service.Approve(c.Request.Context(), reviewer, id, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	reviewer := reviewerFromContext(c)
	id := c.Param("id")

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject timesheet validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), reviewer, id, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkApprove(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)
	reviewer := reviewerFromContext(c)

	var req BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http bulk approve validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	result, err := h.service.BulkApprove(c.Request.Context(), reviewer, req.IDs, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, result)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) BulkReject(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)
	reviewer := reviewerFromContext(c)

	var req BulkRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http bulk reject validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	result, err := h.service.BulkReject(c.Request.Context(), reviewer, req.IDs, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, result)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if key, ok := lk.(string); ok && key != "" {
			h.rdb.Del(c.Request.Context(), key)
		}
	}
}

func (h *Handler) cacheIdempotentResult(c *gin.Context, result any) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok && key != "" {
			if payload, err := json.Marshal(result); err == nil {
				_ = h.rdb.Set(c.Request.Context(), key, payload, 24*time.Hour).Err()
			}
		}
	}
}
