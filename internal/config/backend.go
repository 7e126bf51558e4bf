package config

import "strings"

// Backend names a snapshot storage implementation
type Backend string

const (
	BackendText   Backend = "text"   // one flat text file per name
	BackendSQLite Backend = "sqlite" // snapshot history in a SQLite database
)

// ParseBackend normalizes a backend name. Unknown names are returned as is
// and rejected by Valid.
func ParseBackend(s string) Backend {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "", "text", "txt":
		return BackendText
	case "sqlite", "sqlite3":
		return BackendSQLite
	default:
		return Backend(s)
	}
}

// Valid reports whether b names a known backend
func (b Backend) Valid() bool {
	return b == BackendText || b == BackendSQLite
}

// Log levels accepted in log.level
var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Formats accepted in log.format and audit.format
var formats = map[string]bool{
	"text": true,
	"json": true,
}
