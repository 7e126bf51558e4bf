package domain

import (
	"fmt"
	"strconv"
)

// CompressorStation is a compressor facility on the network
type CompressorStation struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Workshop       int    `json:"workshop" yaml:"workshop"`
	WorkshopActive int    `json:"workshop_active" yaml:"workshop_active"`
	Effective      int    `json:"effective" yaml:"effective"`
}

// StationSpec carries the operator-supplied fields of a new station
type StationSpec struct {
	Name           string
	Workshop       int
	WorkshopActive int
	Effective      int
}

// Validate checks the spec before a station is created from it
func (s StationSpec) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if s.Workshop <= 0 {
		return NewValidationError("workshop", strconv.Itoa(s.Workshop), ErrInvalidInput)
	}
	if s.Effective <= 0 {
		return NewValidationError("effective", strconv.Itoa(s.Effective), ErrInvalidInput)
	}
	return checkActive(s.WorkshopActive, s.Workshop)
}

// NewStation builds a station with an allocated ID
func NewStation(id string, spec StationSpec) CompressorStation {
	return CompressorStation{
		ID:             id,
		Name:           spec.Name,
		Workshop:       spec.Workshop,
		WorkshopActive: spec.WorkshopActive,
		Effective:      spec.Effective,
	}
}

// EntityID returns the station ID
func (s CompressorStation) EntityID() string { return s.ID }

// Validate checks a fully populated station, e.g. one decoded from a file
func (s CompressorStation) Validate() error {
	if _, err := ParseID(s.ID); err != nil {
		return err
	}
	if err := validateName(s.Name); err != nil {
		return err
	}
	if s.Workshop < 0 {
		return NewValidationError("workshop", strconv.Itoa(s.Workshop), ErrInvalidInput)
	}
	if s.Effective < 0 {
		return NewValidationError("effective", strconv.Itoa(s.Effective), ErrInvalidInput)
	}
	return checkActive(s.WorkshopActive, s.Workshop)
}

// WithActive returns a copy with a new active workshop count, or an
// ErrInvariantViolation if it would exceed the total.
func (s CompressorStation) WithActive(active int) (CompressorStation, error) {
	if err := checkActive(active, s.Workshop); err != nil {
		return s, err
	}
	s.WorkshopActive = active
	return s, nil
}

// Idle returns the number of inactive workshops
func (s CompressorStation) Idle() int {
	return s.Workshop - s.WorkshopActive
}

func checkActive(active, total int) error {
	if active < 0 {
		return NewValidationError("workshop_active", strconv.Itoa(active), ErrInvalidInput)
	}
	if active > total {
		return NewValidationError("workshop_active",
			fmt.Sprintf("%d > %d", active, total), ErrInvariantViolation)
	}
	return nil
}
