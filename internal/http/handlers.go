package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arteralabs/artera/internal/auth"
	"github.com/arteralabs/artera/internal/config"
	"github.com/arteralabs/artera/internal/logging"
	"github.com/arteralabs/artera/internal/monitoring"
	"github.com/arteralabs/artera/internal/storage"
)

const apiVersion = "1.0.0"

// Handlers contains all HTTP handlers.
type Handlers struct {
	storage *storage.Service
	auth    *auth.Service
	metrics *monitoring.Metrics
	logger  *logging.Logger
	cfg     *config.Config
}

// NewHandlers creates a new handler set.
func NewHandlers(
	store *storage.Service,
	authSvc *auth.Service,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		storage: store,
		auth:    authSvc,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// Root serves the web UI, injecting the configured base URL into the
// bundled HTML when it is present.
func (h *Handlers) Root(c *gin.Context) {
	page := filepath.Join(h.cfg.Server.StaticDir, "index.html")
	content, err := os.ReadFile(page)
	if err != nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fallbackHTML(h.cfg.Server.BaseURL)))
		return
	}
	html := strings.Replace(string(content),
		"const API_BASE = window.location.origin;",
		fmt.Sprintf("const API_BASE = %q;", h.cfg.Server.BaseURL), 1)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// APIInfo reports the service name, version, and active configuration.
func (h *Handlers) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":      "Artera Storage API",
		"status":       "running",
		"version":      apiVersion,
		"base_url":     h.cfg.Server.BaseURL,
		"port":         h.cfg.Server.Port,
		"storage_root": h.storage.Root(),
		"configuration": gin.H{
			"base_url":     h.cfg.Server.BaseURL,
			"port":         h.cfg.Server.Port,
			"storage_root": h.cfg.Storage.Root,
			"auth_enabled": h.cfg.Auth.Enabled,
		},
	})
}

// Health reports service and storage root health.
func (h *Handlers) Health(c *gin.Context) {
	root := h.storage.Root()
	_, err := os.Stat(root)
	c.JSON(http.StatusOK, gin.H{
		"status":              "healthy",
		"storage_root":        h.cfg.Storage.Root,
		"storage_root_path":   root,
		"storage_root_exists": err == nil,
	})
}

// Login issues a JWT for the supplied credentials.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.auth.CheckCredentials(req.Username, req.Password); err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, _, err := h.auth.IssueToken(req.Username)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	h.logger.Info("Login successful", zap.String("username", req.Username))
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.auth.TokenTTL().Minutes()),
	})
}

// Verify echoes the claims of a valid bearer token. Runs behind the auth
// middleware.
func (h *Handlers) Verify(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"username": claims.Username,
		"user_id":  claims.UserID,
		"expires":  claims.ExpiresAt,
	})
}

// CreateFolder handles POST /api/folders/create.
func (h *Handlers) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "create_folder")
	abs, err := h.storage.CreateFolder(req.Path)
	if err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")

	rel := h.storage.Relative(abs)
	c.JSON(http.StatusCreated, MessageResponse{
		Message: "Folder created successfully: " + rel,
		Path:    rel,
	})
}

// DeleteFolder handles DELETE /api/folders/delete.
func (h *Handlers) DeleteFolder(c *gin.Context) {
	var req DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	recursive := true
	if req.Recursive != nil {
		recursive = *req.Recursive
	}

	timer := monitoring.NewTimer(h.metrics, "delete_folder")
	if err := h.storage.DeleteFolder(req.Path, recursive); err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, MessageResponse{
		Message: "Folder deleted successfully: " + req.Path,
		Path:    req.Path,
	})
}

// UploadFile handles POST /api/files/upload (multipart form).
func (h *Handlers) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	folderPath := c.PostForm("folder_path")
	if folderPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder_path is required"})
		return
	}

	overwrite := true
	if raw := c.PostForm("overwrite"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "overwrite must be a boolean"})
			return
		}
		overwrite = parsed
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		h.fail(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "upload_file")
	abs, err := h.storage.SaveFile(content, folderPath, fileHeader.Filename, overwrite)
	if err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")
	h.metrics.UploadBytes.Add(float64(len(content)))

	rel := h.storage.Relative(abs)
	c.JSON(http.StatusCreated, UploadResponse{
		Message:     "File uploaded successfully: " + fileHeader.Filename,
		Path:        rel,
		ContentType: mimetype.Detect(content).String(),
	})
}

// DeleteFile handles DELETE /api/files/delete?file_path=.
func (h *Handlers) DeleteFile(c *gin.Context) {
	filePath := c.Query("file_path")
	if filePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_path is required"})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "delete_file")
	if err := h.storage.DeleteFile(filePath); err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, MessageResponse{
		Message: "File deleted successfully: " + filePath,
		Path:    filePath,
	})
}

// List handles GET /api/files/list?path=&recursive=.
func (h *Handlers) List(c *gin.Context) {
	path := c.Query("path")

	recursive := true
	if raw := c.Query("recursive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recursive must be a boolean"})
			return
		}
		recursive = parsed
	}

	timer := monitoring.NewTimer(h.metrics, "list")
	items, err := h.storage.List(path, recursive)
	if err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, ListResponse{Items: items, TotalCount: len(items)})
}

// Tree handles GET /api/files/tree?path=.
func (h *Handlers) Tree(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "tree")
	result, err := h.storage.Tree(c.Query("path"))
	if err != nil {
		timer.Stop("error")
		h.fail(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, TreeResponse{
		Tree:         result.Tree,
		TotalFiles:   result.TotalFiles,
		TotalFolders: result.TotalFolders,
	})
}

// fail maps a storage error to its HTTP status. Internal failures are
// logged and replaced with a generic message.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, storage.ErrInvalidPath),
		errors.Is(err, storage.ErrNotAFolder),
		errors.Is(err, storage.ErrNotAFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fallbackHTML(baseURL string) string {
	return fmt.Sprintf(`<html>
	<body>
		<h1>Artera Storage API</h1>
		<p>Status: running</p>
		<p>Version: %s</p>
		<p>Base URL: %s</p>
	</body>
</html>`, apiVersion, baseURL)
}
