package storage

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// CreateFolder creates the directory at the given relative path, including
// missing intermediates. Idempotent: an existing folder succeeds. Returns
// the absolute path of the folder.
func (s *Service) CreateFolder(relativePath string) (string, error) {
	abs, err := s.Resolve(relativePath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create folder %q: %w", relativePath, err)
	}

	s.logger.Info("Folder created", zap.String("path", s.relativePath(abs)))
	return abs, nil
}

// DeleteFolder removes the directory at the given relative path. When
// recursive, the folder and all descendants are removed unconditionally;
// otherwise only an empty folder is removed and ErrConflict is returned
// for a non-empty one. Deletion is irreversible.
func (s *Service) DeleteFolder(relativePath string, recursive bool) error {
	abs, err := s.Resolve(relativePath)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: folder %q", ErrNotFound, relativePath)
	}
	if err != nil {
		return fmt.Errorf("stat folder %q: %w", relativePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotAFolder, relativePath)
	}

	if recursive {
		if err := os.RemoveAll(abs); err != nil {
			return fmt.Errorf("delete folder %q: %w", relativePath, err)
		}
	} else if err := os.Remove(abs); err != nil {
		// Remove on a directory only succeeds when it is empty.
		return fmt.Errorf("%w: folder %q is not empty", ErrConflict, relativePath)
	}

	s.logger.Info("Folder deleted",
		zap.String("path", relativePath),
		zap.Bool("recursive", recursive),
	)
	return nil
}
