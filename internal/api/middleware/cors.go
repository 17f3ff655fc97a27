package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/config"
)

// ConfigCORS allows the configured origins with credentials so the session
// cookie is sent cross-site. Origins are re-read on every request to pick up
// config reloads.
func ConfigCORS(conf *config.APIConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return OriginAllowed(conf, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// OriginAllowed reports whether origin is listed in the CORS domains.
func OriginAllowed(conf *config.APIConfig, origin string) bool {
	for _, allowed := range conf.CORSDomains() {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
