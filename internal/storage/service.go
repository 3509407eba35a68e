package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arteralabs/artera/internal/logging"
)

// Service provides sandboxed filesystem operations beneath a fixed root.
// One instance is constructed at process start and shared by all request
// handlers; the only state it carries is the resolved root path.
type Service struct {
	root   string
	logger *logging.Logger
}

// New creates the service and bootstraps the storage root: the root
// directory and any missing default folders are created, existing content
// is never touched. root may be relative, in which case it is resolved
// against the working directory.
func New(root string, defaultFolders []string, logger *logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.NewDefault()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	// Resolve symlinks once so containment checks compare against the
	// canonical root (macOS /tmp is itself a symlink).
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	s := &Service{root: resolved, logger: logger}

	for _, name := range defaultFolders {
		dir := filepath.Join(resolved, name)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.Mkdir(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create default folder %s: %w", name, err)
			}
			logger.Info("Default folder created", zap.String("name", name))
		}
	}

	existing, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("read storage root: %w", err)
	}
	logger.Info("Storage root initialized",
		zap.String("path", resolved),
		zap.Int("existing_items", len(existing)),
	)

	return s, nil
}

// Root returns the resolved absolute storage root path.
func (s *Service) Root() string {
	return s.root
}

// Relative expresses an absolute path beneath the root as a /-separated
// path relative to the root.
func (s *Service) Relative(abs string) string {
	return s.relativePath(abs)
}

// relativePath expresses an absolute path beneath the root as a
// /-separated path relative to the root.
func (s *Service) relativePath(abs string) string {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
