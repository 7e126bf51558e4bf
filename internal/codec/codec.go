// Package codec converts inventories to and from their external representations.
//
// TextCodec is the save format: a pipes section, a separator line of dashes
// and a stations section, one comma-separated record per line. YAMLCodec and
// JSONCodec write and read exports, which also carry the connection graph.
package codec

import (
	"fmt"
	"io"
	"strconv"

	"gasnet/internal/domain"
)

// Decoded is the result of reading a save file. Malformed lists every line
// that was skipped.
type Decoded struct {
	Inventory *domain.Inventory
	Malformed []*domain.MalformedRecordError
}

// Codec reads and writes complete inventories
type Codec interface {
	Encode(w io.Writer, inv *domain.Inventory) error
	Decode(r io.Reader) (*Decoded, error)
	Format() string
}

// Exporter writes an inventory in a presentation format
type Exporter interface {
	Export(inv *domain.Inventory, w io.Writer) error
	Format() string
}

// Exporters returns the available export formats keyed by name
func Exporters() map[string]Exporter {
	yamlCodec, jsonCodec := NewYAMLCodec(), NewJSONCodec()
	return map[string]Exporter{
		yamlCodec.Format(): yamlCodec,
		jsonCodec.Format(): jsonCodec,
	}
}

// Importer reads an inventory written by the Exporter of the same format.
// Invalid entries are skipped and reported like malformed save lines.
type Importer interface {
	Import(r io.Reader) (*Decoded, error)
	Format() string
}

// Importers returns the available import formats keyed by name
func Importers() map[string]Importer {
	yamlCodec, jsonCodec := NewYAMLCodec(), NewJSONCodec()
	return map[string]Importer{
		yamlCodec.Format(): yamlCodec,
		jsonCodec.Format(): jsonCodec,
	}
}

// checkImported validates every entry of a parsed document. Line is the
// 1-based position of the entry within its list.
func checkImported(raw *domain.Inventory) *Decoded {
	result := &Decoded{Inventory: domain.NewInventory()}
	reject := func(i int, section, text string, err error) {
		result.Malformed = append(result.Malformed, &domain.MalformedRecordError{
			Line: i + 1, Section: section, Text: text, Err: err,
		})
	}

	for i, p := range raw.Pipes {
		if err := p.Validate(); err != nil {
			reject(i, sectionPipe, fmt.Sprintf("%+v", p), err)
			continue
		}
		result.Inventory.AddPipe(p)
	}
	for i, s := range raw.Stations {
		if err := s.Validate(); err != nil {
			reject(i, sectionStation, fmt.Sprintf("%+v", s), err)
			continue
		}
		result.Inventory.AddStation(s)
	}
	for i, e := range raw.Edges {
		if err := validateEdge(e); err != nil {
			reject(i, sectionEdge, e.String(), err)
			continue
		}
		result.Inventory.Edges = append(result.Inventory.Edges, e)
	}
	return result
}

func validateEdge(e domain.Edge) error {
	if _, err := domain.ParseID(e.From); err != nil {
		return err
	}
	if _, err := domain.ParseID(e.To); err != nil {
		return err
	}
	if e.PipeID != "" {
		if _, err := domain.ParseID(e.PipeID); err != nil {
			return err
		}
	}
	if e.Diameter <= 0 {
		return domain.NewValidationError("diameter", strconv.Itoa(e.Diameter), domain.ErrInvalidInput)
	}
	return nil
}
