package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("cached response is replayed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		defer rdb.Close()

		r := gin.New()
		r.POST("/bulk", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "data": "fresh"})
		})

		mock.ExpectGet("idemp:/bulk::abc").SetVal(`{"succeeded":["x"],"failed":[]}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bulk", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "succeeded")
		assert.NotContains(t, w.Body.String(), "fresh")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate answers 409", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		defer rdb.Close()

		r := gin.New()
		r.POST("/bulk", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		mock.ExpectGet("idemp:/bulk::abc").RedisNil()
		mock.ExpectSetNX("idemp:/bulk::abc:lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bulk", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		defer rdb.Close()

		r := gin.New()
		r.POST("/bulk", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bulk", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
