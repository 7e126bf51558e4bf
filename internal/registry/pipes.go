package registry

import "gasnet/internal/domain"

// PipeRegistry owns the network's pipes
type PipeRegistry struct {
	*Registry[domain.Pipe]
}

// NewPipeRegistry creates an empty pipe registry
func NewPipeRegistry() *PipeRegistry {
	return &PipeRegistry{Registry: New[domain.Pipe]("pipe")}
}

// Create validates spec and stores a new pipe under a fresh ID
func (r *PipeRegistry) Create(spec domain.PipeSpec) (domain.Pipe, error) {
	if err := spec.Validate(); err != nil {
		return domain.Pipe{}, err
	}
	pipe := r.Insert(func(id string) domain.Pipe {
		return domain.NewPipe(id, spec)
	})
	return pipe, nil
}

// SetRepair changes a pipe's repair status, the only editable pipe field
func (r *PipeRegistry) SetRepair(id string, repair bool) (domain.Pipe, error) {
	pipe, err := r.Get(id)
	if err != nil {
		return domain.Pipe{}, err
	}
	pipe.RepairStatus = repair
	return pipe, r.Replace(pipe)
}

// FindAvailable returns the lowest-ID pipe of the given diametre that is not
// under repair
func (r *PipeRegistry) FindAvailable(diametre int) (domain.Pipe, bool) {
	return r.Find(func(p domain.Pipe) bool {
		return p.Available(diametre)
	})
}

// UnderRepair counts pipes flagged for repair
func (r *PipeRegistry) UnderRepair() int {
	n := 0
	for _, p := range r.items {
		if p.RepairStatus {
			n++
		}
	}
	return n
}
