package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"gasnet/internal/domain"
)

// JSONCodec exports and imports inventories as JSON
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export exports inventory data to JSON
func (c *JSONCodec) Export(inv *domain.Inventory, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(inv); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Import reads a JSON export
func (c *JSONCodec) Import(r io.Reader) (*Decoded, error) {
	var raw domain.Inventory
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return checkImported(&raw), nil
}
