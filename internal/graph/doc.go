// Package graph holds the directed station-connection graph and its ordering.
//
// ConnectionGraph is an adjacency list keyed by source station ID. Edges are
// only ever appended: there is no removal, and parallel edges between the
// same pair of stations are kept. Connect resolves a pipe for a new edge
// before touching the graph, so a failed connect leaves it unchanged.
//
// TopologicalOrder runs an iterative depth-first search with an explicit
// frame stack. Stations are visited in ascending numeric ID order and
// neighbours in the order their edges were added, which makes the result
// reproducible. A back-edge to a station still on the current path is
// reported as a *domain.CycleError.
package graph
