package domain

import (
	"strconv"
	"strings"
)

// Conventional pipe diametres, in millimetres.
var StandardDiametres = []int{500, 700, 1000, 1400}

// Pipe is a pipeline segment
type Pipe struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Length       int    `json:"length" yaml:"length"`
	Diametre     int    `json:"diametre" yaml:"diametre"`
	RepairStatus bool   `json:"repair_status" yaml:"repair_status"`
}

// PipeSpec carries the operator-supplied fields of a new pipe
type PipeSpec struct {
	Name         string
	Length       int
	Diametre     int
	RepairStatus bool
}

// Validate checks the spec before a pipe is created from it
func (s PipeSpec) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if s.Length <= 0 {
		return NewValidationError("length", strconv.Itoa(s.Length), ErrInvalidInput)
	}
	if s.Diametre <= 0 {
		return NewValidationError("diametre", strconv.Itoa(s.Diametre), ErrInvalidInput)
	}
	return nil
}

// NewPipe builds a pipe with an allocated ID
func NewPipe(id string, spec PipeSpec) Pipe {
	return Pipe{
		ID:           id,
		Name:         spec.Name,
		Length:       spec.Length,
		Diametre:     spec.Diametre,
		RepairStatus: spec.RepairStatus,
	}
}

// EntityID returns the pipe ID
func (p Pipe) EntityID() string { return p.ID }

// Validate checks a fully populated pipe, e.g. one decoded from a file
func (p Pipe) Validate() error {
	if _, err := ParseID(p.ID); err != nil {
		return err
	}
	if err := validateName(p.Name); err != nil {
		return err
	}
	if p.Length < 0 {
		return NewValidationError("length", strconv.Itoa(p.Length), ErrInvalidInput)
	}
	if p.Diametre < 0 {
		return NewValidationError("diametre", strconv.Itoa(p.Diametre), ErrInvalidInput)
	}
	return nil
}

// Available reports whether the pipe can carry a new connection of the given diametre
func (p Pipe) Available(diametre int) bool {
	return p.Diametre == diametre && !p.RepairStatus
}

// RepairLabel renders the repair flag the way the menu shows it
func (p Pipe) RepairLabel() string {
	if p.RepairStatus {
		return "Yes"
	}
	return "No"
}

func validateName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return NewValidationError("name", name, ErrInvalidInput)
	}
	return nil
}
