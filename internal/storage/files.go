package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SaveFile writes content as filename inside the folder at folderPath. The
// target folder must already exist; upload never creates intermediates
// (folder creation does, deliberately distinguishing the two). The filename
// must name a single leaf entry. When the destination exists and overwrite
// is false, ErrConflict is returned and the original bytes are untouched.
// Returns the absolute path of the written file.
func (s *Service) SaveFile(content []byte, folderPath, filename string, overwrite bool) (string, error) {
	folder, err := s.Resolve(folderPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(folder)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: target folder %q", ErrNotFound, folderPath)
	}
	if err != nil {
		return "", fmt.Errorf("stat folder %q: %w", folderPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrNotAFolder, folderPath)
	}

	if err := validateFilename(filename); err != nil {
		return "", err
	}

	dest := filepath.Join(folder, filename)
	if _, err := os.Stat(dest); err == nil && !overwrite {
		return "", fmt.Errorf("%w: file already exists: %s", ErrConflict, s.relativePath(dest))
	}

	if err := writeAtomic(dest, content); err != nil {
		return "", fmt.Errorf("save file %q: %w", filename, err)
	}

	s.logger.Info("File saved",
		zap.String("path", s.relativePath(dest)),
		zap.Int("bytes", len(content)),
	)
	return dest, nil
}

// DeleteFile removes the single file at the given relative path.
func (s *Service) DeleteFile(relativePath string) error {
	abs, err := s.Resolve(relativePath)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: file %q", ErrNotFound, relativePath)
	}
	if err != nil {
		return fmt.Errorf("stat file %q: %w", relativePath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotAFile, relativePath)
	}

	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("delete file %q: %w", relativePath, err)
	}

	s.logger.Info("File deleted", zap.String("path", relativePath))
	return nil
}

// validateFilename ensures the name denotes a single leaf entry, not a path.
func validateFilename(filename string) error {
	name := strings.TrimSpace(filename)
	if name == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidPath)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid filename %q", ErrInvalidPath, filename)
	}
	return nil
}

// writeAtomic writes content to a temp file in the destination directory
// and renames it into place so readers never observe a partial file.
func writeAtomic(dest string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
