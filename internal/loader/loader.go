// Package loader reads network descriptions written by Export back from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
)

// FormatFor picks the import format from a file extension
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", domain.NewValidationError("extension", ext, domain.ErrInvalidInput)
	}
}

// LoadFile loads a network description from a YAML or JSON file
func LoadFile(path string) (*codec.Decoded, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.IOError("open", path, err)
	}
	defer f.Close()

	decoded, err := codec.Importers()[format].Import(f)
	if err != nil {
		return nil, domain.IOError("read", path, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err))
	}
	return decoded, nil
}
