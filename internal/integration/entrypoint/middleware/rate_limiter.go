package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// RateLimiter refuses requests once a client has used its budget for the
// current fixed window. Clients are keyed by IP unless PerUser is set.
type RateLimiter struct {
	name    string
	limit   int64
	window  time.Duration
	counter WindowCounter
	keyFunc func(*gin.Context) string
}

func NewRateLimiter(name string, limit int, window time.Duration, counter WindowCounter) *RateLimiter {
	return &RateLimiter{
		name:    name,
		limit:   int64(limit),
		window:  window,
		counter: counter,
		keyFunc: clientKey,
	}
}

// PerUser keys the limiter by the authenticated user, so it has to run after
// AuthMiddleware.Authenticate. Anonymous requests still count per IP.
func (rl *RateLimiter) PerUser() *RateLimiter {
	rl.keyFunc = func(c *gin.Context) string {
		if userID, ok := GetUserIDFromContext(c); ok {
			return "user:" + userID.String()
		}
		return clientKey(c)
	}
	return rl
}

func clientKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "addr:" + c.Request.RemoteAddr
}

// Middleware enforces the limit. When the counter is unreachable the request
// is let through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		hits, err := rl.counter.Hit(c.Request.Context(), rl.name+":"+rl.keyFunc(c), rl.window)
		if err != nil {
			slog.Warn("Rate limit check failed, allowing request", "limiter", rl.name, "error", err)
			c.Next()
			return
		}
		if hits > rl.limit {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}
		c.Next()
	}
}
