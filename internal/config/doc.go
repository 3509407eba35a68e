// Package config provides 12-factor configuration management for the Artera
// storage API.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, base URL, static dir)
//   - Storage: Storage root directory and bootstrap folders
//   - Auth: JWT signing and optional credential checking
//   - CORS: Allowed origins
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, BASE_URL, STATIC_DIR
//   - STORAGE_ROOT, STORAGE_DEFAULT_FOLDERS
//   - AUTH_ENABLED, JWT_SECRET_KEY, JWT_ACCESS_TOKEN_EXPIRE_MINUTES, AUTH_PASSWORD_HASH
//   - CORS_ORIGINS
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
