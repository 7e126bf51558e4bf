package service

import (
	"fmt"
	"log/slog"

	"gasnet/internal/domain"
	"gasnet/internal/graph"
	"gasnet/internal/registry"
	"gasnet/internal/repository"
)

// NetworkService provides the inventory operations of one gas network
type NetworkService struct {
	pipes     *registry.PipeRegistry
	stations  *registry.StationRegistry
	graph     *graph.ConnectionGraph
	repo      repository.Repository
	eventBus  *EventBus
	logger    *slog.Logger
	provision graph.Provisioner
	retain    int
}

// Option configures a NetworkService
type Option func(*NetworkService)

// WithProvisioner sets how Connect obtains a new pipe when none of the
// requested diametre is available
func WithProvisioner(p graph.Provisioner) Option {
	return func(s *NetworkService) {
		s.provision = p
	}
}

// WithSnapshotRetention keeps at most n snapshots per name on repositories
// that support pruning. Zero keeps everything.
func WithSnapshotRetention(n int) Option {
	return func(s *NetworkService) {
		s.retain = n
	}
}

// NewNetworkService creates an empty network. repo may be nil, in which case
// Save and Load fail with ErrIOFailure.
func NewNetworkService(repo repository.Repository, eventBus *EventBus, logger *slog.Logger, opts ...Option) *NetworkService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &NetworkService{
		pipes:     registry.NewPipeRegistry(),
		stations:  registry.NewStationRegistry(),
		graph:     graph.New(),
		repo:      repo,
		eventBus:  eventBus,
		logger:    logger,
		provision: FixedLengthProvisioner(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FixedLengthProvisioner provisions pipes of the given length named after
// their diametre
func FixedLengthProvisioner(length int) graph.Provisioner {
	return func(diametre int) (domain.PipeSpec, error) {
		return domain.PipeSpec{
			Name:     fmt.Sprintf("DN%d", diametre),
			Length:   length,
			Diametre: diametre,
		}, nil
	}
}

// ============================================================================
// Pipes
// ============================================================================

// CreatePipe validates spec and adds a pipe under a fresh ID
func (s *NetworkService) CreatePipe(spec domain.PipeSpec) (domain.Pipe, error) {
	pipe, err := s.pipes.Create(spec)
	if err != nil {
		return domain.Pipe{}, err
	}
	s.pipeCreated(pipe)
	return pipe, nil
}

func (s *NetworkService) pipeCreated(pipe domain.Pipe) {
	s.logger.Debug("pipe created", "id", pipe.ID, "diametre", pipe.Diametre)
	s.eventBus.Publish(newEvent(EventPipeCreated,
		map[string]string{"pipe_id": pipe.ID},
		"Pipe created with ID: %s", pipe.ID))
}

// EditPipe sets the repair status of a pipe
func (s *NetworkService) EditPipe(id string, repair bool) (domain.Pipe, error) {
	pipe, err := s.pipes.SetRepair(id, repair)
	if err != nil {
		return domain.Pipe{}, err
	}

	s.eventBus.Publish(newEvent(EventPipeEdited,
		map[string]string{"pipe_id": id},
		"Pipe with ID: %s edited", id))
	return pipe, nil
}

// DeletePipe removes a pipe. Edges that were carried by it are kept.
func (s *NetworkService) DeletePipe(id string) error {
	if err := s.pipes.Delete(id); err != nil {
		s.eventBus.Publish(newEvent(EventPipeDeleteMissing,
			map[string]string{"pipe_id": id},
			"Attempt to delete non-existent pipe with ID %s", id))
		return err
	}

	s.eventBus.Publish(newEvent(EventPipeDeleted,
		map[string]string{"pipe_id": id},
		"pipe with ID %s has been deleted.", id))
	return nil
}

// Pipe returns a pipe by ID
func (s *NetworkService) Pipe(id string) (domain.Pipe, error) {
	return s.pipes.Get(id)
}

// Pipes returns all pipes in ascending numeric ID order
func (s *NetworkService) Pipes() []domain.Pipe {
	return s.pipes.List()
}

// NextPipeID returns the ID the next created pipe will get
func (s *NetworkService) NextPipeID() string {
	return s.pipes.NextID()
}

// ============================================================================
// Compressor Stations
// ============================================================================

// CreateStation validates spec and adds a station under a fresh ID
func (s *NetworkService) CreateStation(spec domain.StationSpec) (domain.CompressorStation, error) {
	station, err := s.stations.Create(spec)
	if err != nil {
		return domain.CompressorStation{}, err
	}

	s.logger.Debug("station created", "id", station.ID, "workshop", station.Workshop)
	s.eventBus.Publish(newEvent(EventStationCreated,
		map[string]string{"station_id": station.ID},
		"Compressor Station created with ID: %s", station.ID))
	return station, nil
}

// EditStation sets the number of active workshops of a station
func (s *NetworkService) EditStation(id string, active int) (domain.CompressorStation, error) {
	station, err := s.stations.SetActive(id, active)
	if err != nil {
		return domain.CompressorStation{}, err
	}

	s.eventBus.Publish(newEvent(EventStationEdited,
		map[string]string{"station_id": id},
		"Compressor Station with ID: %s edited", id))
	return station, nil
}

// DeleteStation removes a station. Its edges stay in the graph but are
// skipped by TopologicalOrder.
func (s *NetworkService) DeleteStation(id string) error {
	if err := s.stations.Delete(id); err != nil {
		s.eventBus.Publish(newEvent(EventStationDeleteMissing,
			map[string]string{"station_id": id},
			"Attempt to delete non-existent CS with ID %s", id))
		return err
	}

	s.eventBus.Publish(newEvent(EventStationDeleted,
		map[string]string{"station_id": id},
		"CS with ID %s has been deleted.", id))
	return nil
}

// Station returns a station by ID
func (s *NetworkService) Station(id string) (domain.CompressorStation, error) {
	return s.stations.Get(id)
}

// Stations returns all stations in ascending numeric ID order
func (s *NetworkService) Stations() []domain.CompressorStation {
	return s.stations.List()
}

// NextStationID returns the ID the next created station will get
func (s *NetworkService) NextStationID() string {
	return s.stations.NextID()
}

// ============================================================================
// Graph
// ============================================================================

// Connect links two stations with a pipe of the given diameter, reusing the
// lowest-ID available pipe or provisioning a new one
func (s *NetworkService) Connect(from, to string, diameter int) (graph.Connection, error) {
	return s.ConnectWith(from, to, diameter, s.provision)
}

// ConnectWith is Connect with a provisioner for this call only, e.g. one
// that asks the operator for the new pipe's name and length
func (s *NetworkService) ConnectWith(from, to string, diameter int, provision graph.Provisioner) (graph.Connection, error) {
	conn, err := s.graph.Connect(s.stations, s.pipes, provision, from, to, diameter)
	if err != nil {
		return graph.Connection{}, err
	}

	if !conn.Reused {
		pipe, err := s.pipes.Get(conn.PipeID)
		if err == nil {
			s.pipeCreated(pipe)
		}
	}

	s.logger.Debug("stations connected", "from", from, "to", to,
		"pipe", conn.PipeID, "reused", conn.Reused)
	s.eventBus.Publish(newEvent(EventStationsConnected,
		map[string]string{"from": from, "to": to, "pipe_id": conn.PipeID},
		"Stations %s and %s connected with pipe %s (diameter %d)", from, to, conn.PipeID, conn.Diameter))
	return conn, nil
}

// Connections returns every edge, sources in ascending numeric order
func (s *NetworkService) Connections() []domain.Edge {
	return s.graph.Edges()
}

// TopologicalOrder orders the registered stations so every edge points
// forward. A cycle yields a *domain.CycleError.
func (s *NetworkService) TopologicalOrder() ([]string, error) {
	return graph.TopologicalOrder(s.stations.IDs(), s.graph)
}

// ============================================================================
// Summary
// ============================================================================

// Summary counts the network's contents
type Summary struct {
	Pipes            int `json:"pipes"`
	PipesUnderRepair int `json:"pipes_under_repair"`
	Stations         int `json:"stations"`
	Connections      int `json:"connections"`
}

// Summary returns the current counts
func (s *NetworkService) Summary() Summary {
	return Summary{
		Pipes:            s.pipes.Len(),
		PipesUnderRepair: s.pipes.UnderRepair(),
		Stations:         s.stations.Len(),
		Connections:      s.graph.Len(),
	}
}

// Inventory returns a detached copy of the pipes and stations
func (s *NetworkService) Inventory() *domain.Inventory {
	inv := domain.NewInventory()
	inv.Pipes = append(inv.Pipes, s.pipes.List()...)
	inv.Stations = append(inv.Stations, s.stations.List()...)
	return inv
}
