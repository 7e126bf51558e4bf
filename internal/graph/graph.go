package graph

import (
	"gasnet/internal/domain"
)

// Adjacency exposes the outgoing edges of a station
type Adjacency interface {
	Neighbors(id string) []domain.Edge
}

// ConnectionGraph is the directed multigraph of station connections
type ConnectionGraph struct {
	adj   map[string][]domain.Edge
	count int
}

// New creates an empty graph
func New() *ConnectionGraph {
	return &ConnectionGraph{adj: make(map[string][]domain.Edge)}
}

// AddEdge appends an edge to its source's adjacency list
func (g *ConnectionGraph) AddEdge(e domain.Edge) {
	g.adj[e.From] = append(g.adj[e.From], e)
	g.count++
}

// Neighbors returns a copy of the outgoing edges of id, in insertion order
func (g *ConnectionGraph) Neighbors(id string) []domain.Edge {
	edges := g.adj[id]
	if len(edges) == 0 {
		return nil
	}
	out := make([]domain.Edge, len(edges))
	copy(out, edges)
	return out
}

// Edges returns every edge, grouped by source in ascending numeric order
func (g *ConnectionGraph) Edges() []domain.Edge {
	sources := make([]string, 0, len(g.adj))
	for id := range g.adj {
		sources = append(sources, id)
	}
	domain.SortIDs(sources)

	out := make([]domain.Edge, 0, g.count)
	for _, id := range sources {
		out = append(out, g.adj[id]...)
	}
	return out
}

// Len returns the number of edges
func (g *ConnectionGraph) Len() int {
	return g.count
}
