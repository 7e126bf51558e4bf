package registry

import "gasnet/internal/domain"

// StationRegistry owns the network's compressor stations
type StationRegistry struct {
	*Registry[domain.CompressorStation]
}

// NewStationRegistry creates an empty station registry
func NewStationRegistry() *StationRegistry {
	return &StationRegistry{Registry: New[domain.CompressorStation]("compressor station")}
}

// Create validates spec and stores a new station under a fresh ID
func (r *StationRegistry) Create(spec domain.StationSpec) (domain.CompressorStation, error) {
	if err := spec.Validate(); err != nil {
		return domain.CompressorStation{}, err
	}
	station := r.Insert(func(id string) domain.CompressorStation {
		return domain.NewStation(id, spec)
	})
	return station, nil
}

// SetActive changes the active workshop count, re-checked against the total
func (r *StationRegistry) SetActive(id string, active int) (domain.CompressorStation, error) {
	station, err := r.Get(id)
	if err != nil {
		return domain.CompressorStation{}, err
	}
	updated, err := station.WithActive(active)
	if err != nil {
		return station, err
	}
	return updated, r.Replace(updated)
}
