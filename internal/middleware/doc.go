// Package middleware provides production-ready HTTP middleware for the
// Artera storage API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//
// CORS Configuration:
//   - AllowOrigins: Permitted origin domains
//   - AllowMethods: HTTP methods (GET, POST, etc.)
//   - AllowHeaders: Request headers
//   - AllowCredentials: Cookie/auth support (disabled under a wildcard origin)
//   - MaxAge: Preflight cache duration
//
// Rate Limiting:
//   - Per-IP tracking with a token bucket per client
//   - Configurable RPS and burst capacity
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig([]string{"*"})))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
