package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"

	// Booking submissions may be retried by flaky mobile clients for a long
	// time, so cached responses live for a day.
	idempotencyTTL = 24 * time.Hour
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode  int             `json:"status_code"`
	Body        json.RawMessage `json:"body"`
	ContentType string          `json:"content_type"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the cached response for repeated mutating
// requests carrying the same Idempotency-Key, so a retried booking submission
// never creates a second booking.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only mutating methods are deduplicated. The payment callback is a
		// GET and carries its own orderid-based idempotency in the service.
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "idempotency:" + key

		data, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				contentType := cached.ContentType
				if contentType == "" {
					contentType = "application/json"
				}
				c.Data(cached.StatusCode, contentType, cached.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			// Redis error - proceed without idempotency.
			c.Next()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are not cached so the client retry can succeed.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			cached := cachedResponse{
				StatusCode:  c.Writer.Status(),
				Body:        w.body.Bytes(),
				ContentType: c.Writer.Header().Get("Content-Type"),
			}
			if data, err := json.Marshal(cached); err == nil {
				_ = redisClient.Set(ctx, cacheKey, data, idempotencyTTL).Err()
			}
		}
	}
}
