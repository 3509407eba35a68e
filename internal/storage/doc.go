// Package storage implements sandboxed filesystem operations beneath a
// single storage root.
//
// Every operation first resolves the caller-supplied relative path through
// the service's resolver, which rejects traversal attempts both textually
// and by comparing the symlink-resolved result against the resolved root.
// Mutations (folders, files) act directly on the filesystem; reads (list,
// tree) are stateless projections recomputed per call.
//
// All fallible operations return sentinel error kinds (ErrInvalidPath,
// ErrNotFound, ErrNotAFolder, ErrNotAFile, ErrConflict) that the HTTP
// layer maps to status codes with errors.Is.
package storage
