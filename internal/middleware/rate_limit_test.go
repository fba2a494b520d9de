package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setEmployee := func(id string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if id != "" {
				c.Set("employee_id", id)
			}
			c.Next()
		}
	}

	do := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bulk", nil))
		return w.Code
	}

	t.Run("second request over burst is rejected", func(t *testing.T) {
		r := gin.New()
		r.POST("/bulk",
			setEmployee("emp-1"),
			middleware.RateLimitByUser(rate.Limit(0), 1),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		assert.Equal(t, http.StatusOK, do(r))
		assert.Equal(t, http.StatusTooManyRequests, do(r))
	})

	t.Run("users are limited independently", func(t *testing.T) {
		r := gin.New()
		limited := middleware.RateLimitByUser(rate.Limit(0), 1)
		r.POST("/bulk", setEmployee("emp-a"), limited, func(c *gin.Context) { c.Status(http.StatusOK) })
		r.POST("/bulk-b", func(c *gin.Context) {
			c.Set("employee_id", "emp-b")
			c.Next()
		}, limited, func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, do(r))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bulk-b", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated request passes through", func(t *testing.T) {
		r := gin.New()
		r.POST("/bulk",
			setEmployee(""),
			middleware.RateLimitByUser(rate.Limit(0), 1),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		assert.Equal(t, http.StatusOK, do(r))
		assert.Equal(t, http.StatusOK, do(r))
	})
}
