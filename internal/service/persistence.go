package service

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"strconv"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
	"gasnet/internal/loader"
	"gasnet/internal/repository"
)

var errNoRepository = errors.New("no repository configured")

// pruner is implemented by repositories that keep snapshot history
type pruner interface {
	Prune(ctx context.Context, name string, keep int) (int64, error)
}

// LoadReport describes the outcome of a Load
type LoadReport struct {
	Target      string
	Pipes       int
	Stations    int
	Connections int
	Malformed   []*domain.MalformedRecordError
}

// Save writes the pipes and stations under name. The graph is not saved.
func (s *NetworkService) Save(ctx context.Context, name string) error {
	if s.repo == nil {
		return domain.IOError("save", name, errNoRepository)
	}

	inv := s.Inventory()
	if err := s.repo.Save(ctx, name, inv); err != nil {
		return err
	}

	target := s.repo.Target(name)
	s.logger.Info("inventory saved", "target", target,
		"pipes", len(inv.Pipes), "stations", len(inv.Stations))
	s.eventBus.Publish(newEvent(EventDataSaved,
		map[string]string{"target": target},
		"Data saved to %s", target))

	if p, ok := s.repo.(pruner); ok && s.retain > 0 {
		removed, err := p.Prune(ctx, name, s.retain)
		if err != nil {
			s.logger.Warn("failed to prune snapshots", "name", name, "error", err)
		} else if removed > 0 {
			s.logger.Debug("pruned snapshots", "name", name, "removed", removed)
		}
	}
	return nil
}

// Load reads the inventory stored under name and merges it into the
// registries: records replace entities with the same ID, others are kept.
// Malformed records are skipped and reported. If the source cannot be read
// nothing changes.
func (s *NetworkService) Load(ctx context.Context, name string) (LoadReport, error) {
	if s.repo == nil {
		return LoadReport{}, domain.IOError("load", name, errNoRepository)
	}

	decoded, err := s.repo.Load(ctx, name)
	if err != nil {
		return LoadReport{}, err
	}

	report := s.merge(s.repo.Target(name), decoded)

	s.logger.Info("inventory loaded", "target", report.Target,
		"pipes", report.Pipes, "stations", report.Stations,
		"malformed", len(report.Malformed))
	s.eventBus.Publish(newEvent(EventDataLoaded,
		map[string]string{
			"target":    report.Target,
			"malformed": strconv.Itoa(len(report.Malformed)),
		},
		"Data loaded from %s", report.Target))
	return report, nil
}

// Target describes where Save and Load put name
func (s *NetworkService) Target(name string) string {
	if s.repo == nil {
		return name
	}
	return s.repo.Target(name)
}

// Import merges a network description written by Export, connections
// included. Connections naming a station or pipe that is not registered after
// the merge are skipped and reported.
func (s *NetworkService) Import(path string) (LoadReport, error) {
	decoded, err := loader.LoadFile(path)
	if err != nil {
		return LoadReport{}, err
	}

	report := s.merge(path, decoded)
	for i, e := range decoded.Inventory.Edges {
		if err := s.checkImportedEdge(e); err != nil {
			report.Malformed = append(report.Malformed, &domain.MalformedRecordError{
				Line: i + 1, Section: "edge", Text: e.String(), Err: err,
			})
			continue
		}
		s.graph.AddEdge(e)
		report.Connections++
	}

	s.logger.Info("network imported", "path", path,
		"pipes", report.Pipes, "stations", report.Stations,
		"connections", report.Connections, "malformed", len(report.Malformed))
	s.eventBus.Publish(newEvent(EventDataImported,
		map[string]string{
			"target":    path,
			"malformed": strconv.Itoa(len(report.Malformed)),
		},
		"Data imported from %s", path))
	return report, nil
}

func (s *NetworkService) checkImportedEdge(e domain.Edge) error {
	for _, id := range []string{e.From, e.To} {
		if !s.stations.Has(id) {
			return &domain.UnknownStationError{ID: id}
		}
	}
	if e.PipeID == "" {
		return nil
	}
	pipe, err := s.pipes.Get(e.PipeID)
	if err != nil {
		return err
	}
	if pipe.Diametre != e.Diameter {
		return domain.NewValidationError("diameter", strconv.Itoa(e.Diameter), domain.ErrInvalidInput)
	}
	return nil
}

// merge upserts decoded pipes and stations by ID
func (s *NetworkService) merge(target string, decoded *codec.Decoded) LoadReport {
	for _, p := range decoded.Inventory.Pipes {
		s.pipes.Put(p)
	}
	for _, cs := range decoded.Inventory.Stations {
		s.stations.Put(cs)
	}

	report := LoadReport{
		Target:    target,
		Pipes:     len(decoded.Inventory.Pipes),
		Stations:  len(decoded.Inventory.Stations),
		Malformed: slices.Clone(decoded.Malformed),
	}
	for _, m := range report.Malformed {
		s.logger.Warn("skipped malformed record", "target", target,
			"line", m.Line, "section", m.Section, "error", m.Err)
	}
	return report
}

// Snapshots lists what the repository holds, newest first
func (s *NetworkService) Snapshots(ctx context.Context) ([]repository.Snapshot, error) {
	if s.repo == nil {
		return nil, domain.IOError("list", "", errNoRepository)
	}
	return s.repo.List(ctx)
}

// Export writes pipes, stations and connections in the named format
func (s *NetworkService) Export(w io.Writer, format string) error {
	exporter, ok := codec.Exporters()[format]
	if !ok {
		return domain.NewValidationError("format", format, domain.ErrInvalidInput)
	}

	inv := s.Inventory()
	inv.Edges = s.graph.Edges()
	return exporter.Export(inv, w)
}

// ExportFormats returns the names accepted by Export
func ExportFormats() []string {
	return slices.Sorted(maps.Keys(codec.Exporters()))
}
