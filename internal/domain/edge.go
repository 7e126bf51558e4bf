package domain

import "fmt"

// Edge is a directed connection between two compressor stations
type Edge struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Diameter int    `json:"diameter" yaml:"diameter"`
	PipeID   string `json:"pipe_id,omitempty" yaml:"pipe_id,omitempty"`
}

// NewEdge creates an edge carried by the given pipe
func NewEdge(from, to string, pipe Pipe) Edge {
	return Edge{
		From:     from,
		To:       to,
		Diameter: pipe.Diametre,
		PipeID:   pipe.ID,
	}
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s (%d)", e.From, e.To, e.Diameter)
}
