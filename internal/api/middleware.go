package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/security"
	"trade-journal/pkg/utils"
)

const requestIDHeader = "X-Request-ID"

// clientLimiter hands out one token bucket per client address.
type clientLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *clientLimiter) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[client]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = lim
	}
	return lim
}

func rateLimitMiddleware(l *clientLimiter, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			logger.Warn().
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client", c.ClientIP()).
				Msg("Rate limit exceeded")
			Fail(c, errors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogMiddleware tags each request with an id and hands a
// request-scoped logger to the session through the request context.
func requestLogMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = utils.NewID()
		}
		reqLogger := logging.WithRequestID(logger, id)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))
		c.Header(requestIDHeader, id)

		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + security.MaskQuery(q)
		}
		logging.LogAPICall(reqLogger, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// accessMiddleware rejects writes while the server is read-only.
func accessMiddleware(ac *security.AccessController) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ac.IsReadOnly() {
			c.Next()
			return
		}
		op := routeOperation(c.Request.Method, c.FullPath())
		if err := ac.CheckPermission(c.Request.Context(), op); err != nil {
			Fail(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// routeOperation classifies a request by its method and route pattern.
func routeOperation(method, route string) security.OperationType {
	if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
		return security.OpRead
	}
	switch {
	case route == "/api/auth/login", route == "/api/auth/logout":
		return security.OpSignIn
	case route == "/api/trades/preview":
		return security.OpRead
	case route == "/api/strategies/:id/activate":
		return security.OpActivateStrategy
	case strings.HasPrefix(route, "/api/auth"):
		return security.OpEditProfile
	case strings.HasPrefix(route, "/api/trades"):
		if method == http.MethodDelete {
			return security.OpDeleteTrade
		}
		return security.OpSaveTrade
	case strings.HasPrefix(route, "/api/strategies"):
		if method == http.MethodDelete {
			return security.OpDeleteStrategy
		}
		return security.OpSaveStrategy
	case strings.HasPrefix(route, "/api/checklist"):
		return security.OpEditChecklist
	case strings.HasPrefix(route, "/api/options"):
		return security.OpEditOptions
	default:
		return security.OpRead
	}
}
