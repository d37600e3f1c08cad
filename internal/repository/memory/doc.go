// Package memory provides in-process repository implementations backed by
// mutex-guarded maps. They are used by tests and by the API when no
// DATABASE_URL is configured.
package memory
