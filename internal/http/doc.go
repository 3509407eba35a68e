// Package http contains the gin request handlers and the JSON schemas of
// the storage API. Handlers translate storage error kinds to status codes:
// InvalidPath/NotAFolder/NotAFile map to 400, NotFound to 404, Conflict to
// 409, and anything else to a generic 500.
package http
