package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CORSOptions struct {
	Origins []string
	Methods []string
	Headers []string
}

// CORS builds the cross-origin policy. A "*" origin allows every origin.
func CORS(opts CORSOptions) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: opts.Methods,
		AllowHeaders: opts.Headers,
		MaxAge:       12 * time.Hour,
	}

	for _, origin := range opts.Origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = opts.Origins
	}

	return cors.New(cfg)
}
