// Package middleware provides HTTP middleware shared by the service's routers.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware applying cfg. When CORS is disabled or no origins are
// configured, requests pass through without CORS headers.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled || len(cfg.Origins) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
