package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured front desk origins. An empty list denies cross-origin calls.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AddAllowMethods("DELETE", "OPTIONS")
	cfg.AddAllowHeaders("Authorization", "Accept", "X-Requested-With", RequestIDHeader)
	cfg.AddExposeHeaders(RequestIDHeader, "Content-Disposition")
	cfg.AllowCredentials = true
	cfg.MaxAge = 10 * time.Minute
	return cors.New(cfg)
}
