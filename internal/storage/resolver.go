package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve validates a user-supplied relative path and returns the absolute
// location beneath the storage root.
//
// Validation is two-layered. The textual checks reject the obvious
// traversal markers cheaply: empty input, ".." anywhere, an absolute-path
// leading separator, and volume separators (any ":", a deliberately
// conservative policy that also rejects colons in otherwise legal names).
// Only the second layer is trusted for security: the candidate is
// symlink-resolved and the result re-checked for containment against the
// resolved root, which catches vectors the textual filter cannot, such as
// symlinks pointing outside the root.
func (s *Service) Resolve(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	// Forward and backslash separators are equivalent segment delimiters.
	normalized := strings.ReplaceAll(trimmed, "\\", "/")
	if strings.HasPrefix(normalized, "/") {
		return "", fmt.Errorf("%w: absolute paths are not allowed: %q", ErrInvalidPath, raw)
	}
	normalized = strings.Trim(normalized, "/")

	if normalized == "" || strings.Contains(normalized, "..") || strings.Contains(normalized, ":") {
		return "", fmt.Errorf("%w: traversal detected in %q", ErrInvalidPath, raw)
	}

	candidate := filepath.Join(s.root, filepath.FromSlash(normalized))

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", raw, err)
	}

	if !s.contains(resolved) {
		return "", fmt.Errorf("%w: %q escapes the storage root", ErrInvalidPath, raw)
	}
	return candidate, nil
}

// contains reports whether abs is the root or a descendant of it.
func (s *Service) contains(abs string) bool {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}

// resolveExisting evaluates symlinks in path. When the full path does not
// exist yet (targets about to be created), the deepest existing ancestor is
// resolved and the remaining segments are re-joined, mirroring how the
// target would resolve once created.
func resolveExisting(path string) (string, error) {
	remainder := ""
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Hit the filesystem root without finding an existing ancestor.
			return filepath.Join(current, remainder), nil
		}
		remainder = filepath.Join(filepath.Base(current), remainder)
		current = parent
	}
}
