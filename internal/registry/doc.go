// Package registry holds the owned, in-memory entity sets of the network.
//
// Registry is a generic ID-keyed store that allocates IDs through
// domain.NextID and remembers every ID it has handed out. PipeRegistry and
// StationRegistry add the entity-specific create and edit rules on top.
//
// Entities are stored and returned by value; callers never hold a reference
// into a registry.
package registry
