package testutil

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the fake server's global rate limit
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Content-Range",
			"Accept",
			"Origin",
			"X-Appwrite-Project",
			"X-Appwrite-Key",
			"X-Appwrite-JWT",
			"X-Appwrite-Locale",
			"X-Appwrite-Session",
			"X-Appwrite-Response-Format",
			"X-Appwrite-ID",
			"X-SDK-Name",
			"X-SDK-Platform",
			"X-SDK-Language",
			"X-SDK-Version",
		},
		ExposeHeaders: []string{"X-Appwrite-Session", "X-Fallback-Cookies"},
		MaxAge:        12 * time.Hour,
	})
}

func rateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			abort(c, http.StatusTooManyRequests, "general_rate_limit_exceeded", "Rate limit for the current endpoint has been exceeded.")
			return
		}
		c.Next()
	}
}

func projectMiddleware(project string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if c.GetHeader("X-Appwrite-Project") != project {
			abort(c, http.StatusUnauthorized, "general_unauthorized_scope", "Project not found or not authorized.")
			return
		}
		c.Next()
	}
}

// faultMiddleware fails queued requests before they reach a handler
func (s *FakeServer) faultMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		var status int
		if len(s.faults) > 0 {
			status, s.faults = s.faults[0], s.faults[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			abort(c, status, "general_server_error", http.StatusText(status))
			return
		}
		c.Next()
	}
}

func (s *FakeServer) recordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.Query(),
			Header: c.Request.Header.Clone(),
		})
		s.mu.Unlock()
		c.Next()
	}
}

// abort writes an error body shaped like the server's
func abort(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message": message,
		"code":    status,
		"type":    errType,
		"version": "1.4.0",
	})
}
