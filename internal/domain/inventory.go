package domain

import "slices"

// Inventory is a detached snapshot of the network's entities, exchanged with
// codecs and repositories. Edges are only filled for exports.
type Inventory struct {
	Pipes    []Pipe              `json:"pipes" yaml:"pipes"`
	Stations []CompressorStation `json:"stations" yaml:"stations"`
	Edges    []Edge              `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// NewInventory creates an empty inventory with initialized slices
func NewInventory() *Inventory {
	return &Inventory{
		Pipes:    make([]Pipe, 0),
		Stations: make([]CompressorStation, 0),
	}
}

// AddPipe appends a pipe
func (i *Inventory) AddPipe(p Pipe) {
	i.Pipes = append(i.Pipes, p)
}

// AddStation appends a station
func (i *Inventory) AddStation(s CompressorStation) {
	i.Stations = append(i.Stations, s)
}

// Sort orders pipes and stations by numeric ID
func (i *Inventory) Sort() {
	slices.SortStableFunc(i.Pipes, func(a, b Pipe) int { return CompareIDs(a.ID, b.ID) })
	slices.SortStableFunc(i.Stations, func(a, b CompressorStation) int { return CompareIDs(a.ID, b.ID) })
}

// Empty reports whether there is nothing to save
func (i *Inventory) Empty() bool {
	return len(i.Pipes) == 0 && len(i.Stations) == 0
}
