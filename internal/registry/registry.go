package registry

import (
	"slices"

	"gasnet/internal/domain"
)

// Entity is anything a Registry can key by ID
type Entity interface {
	EntityID() string
}

// Registry is an ID-keyed set of entities of one kind
type Registry[T Entity] struct {
	kind  string
	items map[string]T
	used  map[int]struct{}
}

// New creates an empty registry. kind names the entity in errors.
func New[T Entity](kind string) *Registry[T] {
	return &Registry[T]{
		kind:  kind,
		items: make(map[string]T),
		used:  make(map[int]struct{}),
	}
}

// Kind returns the entity name used in errors
func (r *Registry[T]) Kind() string {
	return r.kind
}

// NextID returns the ID the next Insert will assign
func (r *Registry[T]) NextID() string {
	return domain.NextID(r.items, r.used)
}

// Insert allocates an ID, builds the entity with it and stores it
func (r *Registry[T]) Insert(build func(id string) T) T {
	id := r.NextID()
	item := build(id)
	r.items[id] = item
	if n, err := domain.ParseID(id); err == nil {
		r.used[n] = struct{}{}
	}
	return item
}

// Put stores an entity under its own ID, replacing any existing one. The ID
// is not recorded as allocated.
func (r *Registry[T]) Put(item T) {
	r.items[item.EntityID()] = item
}

// Replace overwrites an existing entity
func (r *Registry[T]) Replace(item T) error {
	if !r.Has(item.EntityID()) {
		return &domain.NotFoundError{Kind: r.kind, ID: item.EntityID()}
	}
	r.items[item.EntityID()] = item
	return nil
}

// Get returns the entity with the given ID
func (r *Registry[T]) Get(id string) (T, error) {
	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, &domain.NotFoundError{Kind: r.kind, ID: id}
	}
	return item, nil
}

// Has reports whether id is live
func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Delete removes the entity. Its ID stays allocated.
func (r *Registry[T]) Delete(id string) error {
	if !r.Has(id) {
		return &domain.NotFoundError{Kind: r.kind, ID: id}
	}
	delete(r.items, id)
	return nil
}

// IDs returns the live IDs in ascending numeric order
func (r *Registry[T]) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	domain.SortIDs(ids)
	return ids
}

// List returns the entities in ascending numeric ID order
func (r *Registry[T]) List() []T {
	ids := r.IDs()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out
}

// Find returns the first entity in ID order that satisfies match
func (r *Registry[T]) Find(match func(T) bool) (T, bool) {
	items := r.List()
	if i := slices.IndexFunc(items, match); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// Len returns the number of live entities
func (r *Registry[T]) Len() int {
	return len(r.items)
}
