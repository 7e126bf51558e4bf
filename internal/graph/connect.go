package graph

import (
	"fmt"
	"strconv"

	"gasnet/internal/domain"
)

// StationSet answers whether a station is registered
type StationSet interface {
	Has(id string) bool
}

// PipeStore is the pipe registry as seen by Connect
type PipeStore interface {
	FindAvailable(diametre int) (domain.Pipe, bool)
	Create(spec domain.PipeSpec) (domain.Pipe, error)
}

// Provisioner supplies the spec of a pipe to create when no existing pipe of
// the requested diametre is available. The returned diametre is overridden.
type Provisioner func(diametre int) (domain.PipeSpec, error)

// Connection is the outcome of a successful Connect
type Connection struct {
	domain.Edge
	Reused bool
}

// Connect links two registered stations with a pipe of the given diametre.
// The lowest-ID available pipe of that diametre is reused as is; otherwise
// provision is asked for a new one, which is added to pipes. The edge is
// appended only once a pipe has been resolved.
func (g *ConnectionGraph) Connect(stations StationSet, pipes PipeStore, provision Provisioner, from, to string, diametre int) (Connection, error) {
	if diametre <= 0 {
		return Connection{}, domain.NewValidationError("diameter", strconv.Itoa(diametre), domain.ErrInvalidInput)
	}
	for _, id := range []string{from, to} {
		if !stations.Has(id) {
			return Connection{}, &domain.UnknownStationError{ID: id}
		}
	}

	pipe, reused := pipes.FindAvailable(diametre)
	if !reused {
		if provision == nil {
			return Connection{}, fmt.Errorf("no available pipe of diameter %d and no provisioner", diametre)
		}
		spec, err := provision(diametre)
		if err != nil {
			return Connection{}, fmt.Errorf("provision pipe: %w", err)
		}
		spec.Diametre = diametre
		pipe, err = pipes.Create(spec)
		if err != nil {
			return Connection{}, fmt.Errorf("create pipe: %w", err)
		}
	}

	edge := domain.NewEdge(from, to, pipe)
	g.AddEdge(edge)
	return Connection{Edge: edge, Reused: reused}, nil
}
