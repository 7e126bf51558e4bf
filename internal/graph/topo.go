package graph

import (
	"slices"

	"gasnet/internal/domain"
)

type mark uint8

const (
	unvisited mark = iota
	onPath
	done
)

type frame struct {
	id     string
	edges  []domain.Edge
	cursor int
}

// TopologicalOrder returns every station exactly once such that each edge
// points from an earlier station to a later one. Edges whose target is not
// in stations are ignored.
func TopologicalOrder(stations []string, adj Adjacency) ([]string, error) {
	ids := slices.Clone(stations)
	domain.SortIDs(ids)

	marks := make(map[string]mark, len(ids))
	for _, id := range ids {
		marks[id] = unvisited
	}

	post := make([]string, 0, len(ids))
	for _, root := range ids {
		if marks[root] != unvisited {
			continue
		}

		marks[root] = onPath
		stack := []frame{{id: root, edges: adj.Neighbors(root)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.cursor < len(top.edges) {
				next := top.edges[top.cursor].To
				top.cursor++

				m, known := marks[next]
				if !known {
					continue
				}
				switch m {
				case unvisited:
					marks[next] = onPath
					stack = append(stack, frame{id: next, edges: adj.Neighbors(next)})
				case onPath:
					return nil, &domain.CycleError{Path: cyclePath(stack, next)}
				}
				continue
			}

			marks[top.id] = done
			post = append(post, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	slices.Reverse(post)
	return post, nil
}

func cyclePath(stack []frame, target string) []string {
	start := 0
	for i, f := range stack {
		if f.id == target {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.id)
	}
	return append(path, target)
}
