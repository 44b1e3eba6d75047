package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fincockpit/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(cache *middleware.ResponseCache, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", cache.Middleware(), func(c *gin.Context) {
		*calls++
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"calls": *calls, "body": body})
	})
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestResponseCache_ServesRepeatedRequests(t *testing.T) {
	calls := 0
	cache := middleware.NewResponseCache(8, time.Minute)
	r := newCachedRouter(cache, &calls)

	first := post(r, `{"a":1}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(middleware.CacheHeader))

	second := post(r, `{"a":1}`)
	assert.Equal(t, "HIT", second.Header().Get(middleware.CacheHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	third := post(r, `{"a":2}`)
	assert.Equal(t, "MISS", third.Header().Get(middleware.CacheHeader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Len())
}

func TestResponseCache_SkipsErrors(t *testing.T) {
	calls := 0
	cache := middleware.NewResponseCache(8, time.Minute)
	r := newCachedRouter(cache, &calls)

	assert.Equal(t, http.StatusBadRequest, post(r, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `not json`).Code)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, cache.Len())
}

func TestResponseCache_Expires(t *testing.T) {
	calls := 0
	cache := middleware.NewResponseCache(8, 20*time.Millisecond)
	r := newCachedRouter(cache, &calls)

	post(r, `{"a":1}`)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "MISS", post(r, `{"a":1}`).Header().Get(middleware.CacheHeader))
	assert.Equal(t, 2, calls)
}
