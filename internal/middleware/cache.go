package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheHeader reports HIT or MISS for requests that went through the response cache.
const CacheHeader = "X-Cache"

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// ResponseCache memoizes successful responses of pure computation endpoints, keyed by
// method, URL and a digest of the request body. Entries expire after the configured TTL.
type ResponseCache struct {
	entries *expirable.LRU[string, cachedResponse]
}

// NewResponseCache creates a cache holding at most size entries for ttl each.
func NewResponseCache(size int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{entries: expirable.NewLRU[string, cachedResponse](size, nil, ttl)}
}

// Len returns the number of live entries.
func (rc *ResponseCache) Len() int {
	return rc.entries.Len()
}

// Purge drops every entry.
func (rc *ResponseCache) Purge() {
	rc.entries.Purge()
}

// cacheKey hashes the body and restores it so handlers can still bind it.
func cacheKey(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	sum := sha256.Sum256(body)
	return c.Request.Method + " " + c.Request.URL.RequestURI() + " " + hex.EncodeToString(sum[:]), nil
}

// bodyRecorder tees everything the handler writes.
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves cached responses and stores 200 responses of the wrapped handlers.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		key, err := cacheKey(c)
		if err != nil {
			logger.Warn("Response cache skipped, body unreadable", slog.String("error", err.Error()))
			c.Next()
			return
		}

		if hit, ok := rc.entries.Get(key); ok {
			c.Set(string(cacheStatusKey), "HIT")
			c.Header(CacheHeader, "HIT")
			c.Data(hit.status, hit.contentType, hit.body)
			c.Abort()
			return
		}

		c.Set(string(cacheStatusKey), "MISS")
		c.Header(CacheHeader, "MISS")
		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if recorder.Status() != http.StatusOK {
			return
		}
		rc.entries.Add(key, cachedResponse{
			status:      recorder.Status(),
			contentType: recorder.Header().Get("Content-Type"),
			body:        bytes.Clone(recorder.buf.Bytes()),
		})
	}
}
