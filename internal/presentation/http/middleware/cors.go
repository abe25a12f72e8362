package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/config"
)

var (
	devOrigins     = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", RequestIDHeader}
)

// corsConfig fills unset lists with development defaults. Idempotency-Key is
// always allowed; browsers need Content-Disposition exposed to name the xlsx
// export.
func corsConfig(cfg *config.CORSConfig) cors.Config {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = devOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	headers := slices.Clone(cfg.AllowedHeaders)
	if len(headers) == 0 {
		headers = slices.Clone(defaultHeaders)
	}
	if !slices.Contains(headers, IdempotencyKeyHeader) {
		headers = append(headers, IdempotencyKeyHeader)
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", RequestIDHeader, IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}
