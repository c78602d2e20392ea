package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

// requireToken verifies the bearer token and stores its claims in the
// request context. Expired and invalid tokens get the same answer.
func (s *HTTPServer) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := common.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				s.logger.Info(ctx, "token expired", "path", c.FullPath())
			} else {
				s.logger.Warn(ctx, "invalid token", "path", c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.ErrorUnauthorized.Error()})
			return
		}

		c.Request = c.Request.WithContext(auth.ContextWithClaims(ctx, claims))
		c.Next()
	}
}

// observe logs each request at debug level and records it in metrics.
func (s *HTTPServer) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()

		s.logger.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method, "route", route, "status", code, "duration", time.Since(start))

		if s.metrics != nil {
			s.metrics.ObserveRequest("http", c.Request.Method+" "+route, outcome(code), time.Since(start))
		}
	}
}

func outcome(code int) string {
	switch {
	case code < 400:
		return metrics.OutcomeOK
	case code == http.StatusUnauthorized:
		return metrics.OutcomeUnauthorized
	case code == http.StatusForbidden:
		return metrics.OutcomeForbidden
	case code < 500:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
