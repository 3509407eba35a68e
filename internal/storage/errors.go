package storage

import "errors"

// Error kinds returned by storage operations. Callers match them with
// errors.Is; wrapped messages carry the offending path.
var (
	// ErrInvalidPath indicates a malformed, empty, or traversal-attempting
	// path or filename.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound indicates the target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAFolder indicates the target exists but is not a directory.
	ErrNotAFolder = errors.New("not a folder")

	// ErrNotAFile indicates the target exists but is not a regular file.
	ErrNotAFile = errors.New("not a file")

	// ErrConflict indicates an overwrite or non-empty delete was refused.
	ErrConflict = errors.New("conflict")
)
