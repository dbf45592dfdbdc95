package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// requestLogger tags each request with an ID and logs it once it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		slog.Info("request",
			"id", id,
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"duration", time.Since(start),
		)
	}
}

func allowsAllOrigins(origins []string) bool {
	return len(origins) == 0 || slices.Contains(origins, "*")
}

func newCORS(origins []string) (gin.HandlerFunc, error) {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, RequestIDHeader)
	cfg.ExposeHeaders = []string{RequestIDHeader}
	if allowsAllOrigins(origins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cors.New(cfg), nil
}

// originChecker mirrors the CORS policy for websocket upgrades.
func originChecker(origins []string) func(r *http.Request) bool {
	if allowsAllOrigins(origins) {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(origins, origin) {
			return true
		}
		// Same-origin pages are always fine.
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
