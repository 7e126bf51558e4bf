package codec

import (
	"errors"
	"fmt"
	"io"

	"gasnet/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec exports and imports inventories as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlInventory represents the YAML structure for an export
type yamlInventory struct {
	Pipes    []yamlPipe    `yaml:"pipes"`
	Stations []yamlStation `yaml:"stations"`
	Edges    []yamlEdge    `yaml:"edges,omitempty"`
}

type yamlPipe struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Length   int    `yaml:"length"`
	Diametre int    `yaml:"diametre"`
	InRepair bool   `yaml:"in_repair"`
}

type yamlStation struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Workshops struct {
		Total  int `yaml:"total"`
		Active int `yaml:"active"`
	} `yaml:"workshops"`
	Effective int `yaml:"effective"`
}

type yamlEdge struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Diameter int    `yaml:"diameter"`
	PipeID   string `yaml:"pipe_id,omitempty"`
}

// Export exports inventory data to YAML
func (c *YAMLCodec) Export(inv *domain.Inventory, w io.Writer) error {
	yi := yamlInventory{
		Pipes:    make([]yamlPipe, 0, len(inv.Pipes)),
		Stations: make([]yamlStation, 0, len(inv.Stations)),
		Edges:    make([]yamlEdge, 0, len(inv.Edges)),
	}

	for _, p := range inv.Pipes {
		yi.Pipes = append(yi.Pipes, yamlPipe{
			ID:       p.ID,
			Name:     p.Name,
			Length:   p.Length,
			Diametre: p.Diametre,
			InRepair: p.RepairStatus,
		})
	}

	for _, s := range inv.Stations {
		ys := yamlStation{ID: s.ID, Name: s.Name, Effective: s.Effective}
		ys.Workshops.Total = s.Workshop
		ys.Workshops.Active = s.WorkshopActive
		yi.Stations = append(yi.Stations, ys)
	}

	for _, e := range inv.Edges {
		yi.Edges = append(yi.Edges, yamlEdge{
			From:     e.From,
			To:       e.To,
			Diameter: e.Diameter,
			PipeID:   e.PipeID,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yi); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// Import reads a YAML export
func (c *YAMLCodec) Import(r io.Reader) (*Decoded, error) {
	var yi yamlInventory
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&yi); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	raw := domain.NewInventory()
	for _, p := range yi.Pipes {
		raw.AddPipe(domain.Pipe{
			ID:           p.ID,
			Name:         p.Name,
			Length:       p.Length,
			Diametre:     p.Diametre,
			RepairStatus: p.InRepair,
		})
	}
	for _, s := range yi.Stations {
		raw.AddStation(domain.CompressorStation{
			ID:             s.ID,
			Name:           s.Name,
			Workshop:       s.Workshops.Total,
			WorkshopActive: s.Workshops.Active,
			Effective:      s.Effective,
		})
	}
	for _, e := range yi.Edges {
		raw.Edges = append(raw.Edges, domain.Edge{
			From:     e.From,
			To:       e.To,
			Diameter: e.Diameter,
			PipeID:   e.PipeID,
		})
	}

	return checkImported(raw), nil
}
