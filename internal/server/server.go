// Package server wires configuration, middleware, routes, and the storage
// service into a runnable HTTP server.
package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arteralabs/artera/internal/auth"
	"github.com/arteralabs/artera/internal/config"
	apihttp "github.com/arteralabs/artera/internal/http"
	"github.com/arteralabs/artera/internal/logging"
	"github.com/arteralabs/artera/internal/middleware"
	"github.com/arteralabs/artera/internal/monitoring"
	"github.com/arteralabs/artera/internal/storage"
)

// Server wraps the HTTP router and its dependencies.
type Server struct {
	router  *gin.Engine
	storage *storage.Service
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a server instance: bootstraps the storage root, builds the
// single shared storage service, and registers all routes.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Artera Storage API",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_root", cfg.Storage.Root),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
	)

	metrics, registry := monitoring.NewMetrics()

	store, err := storage.New(cfg.Storage.Root, cfg.Storage.DefaultFolders, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	authSvc := auth.New(cfg.Auth.Secret, cfg.Auth.TokenTTLMinutes, cfg.Auth.PasswordHash)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(store, authSvc, metrics, logger, cfg)

	router.GET("/", handlers.Root)
	if info, err := os.Stat(cfg.Server.StaticDir); err == nil && info.IsDir() {
		router.Static("/static", cfg.Server.StaticDir)
	}

	router.GET("/api", handlers.APIInfo)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	authRoutes := router.Group("/api/auth")
	authRoutes.POST("/login", handlers.Login)
	authRoutes.GET("/verify", authSvc.Middleware(), handlers.Verify)

	// Mutation endpoints are bearer-gated when auth is enabled; reads
	// stay open either way.
	var gate []gin.HandlerFunc
	if cfg.Auth.Enabled {
		gate = append(gate, authSvc.Middleware())
	}

	folders := router.Group("/api/folders", gate...)
	folders.POST("/create", handlers.CreateFolder)
	folders.DELETE("/delete", handlers.DeleteFolder)

	files := router.Group("/api/files")
	files.GET("/list", handlers.List)
	files.GET("/tree", handlers.Tree)

	fileMutations := files.Group("", gate...)
	fileMutations.POST("/upload", handlers.UploadFile)
	fileMutations.DELETE("/delete", handlers.DeleteFile)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		storage: store,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Storage exposes the shared storage service.
func (s *Server) Storage() *storage.Service {
	return s.storage
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server")
	s.logger.Sync()
	return nil
}
