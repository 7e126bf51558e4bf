package domain

import (
	"cmp"
	"slices"
	"strconv"
)

// ParseID parses an entity ID. IDs are positive decimal integers in canonical
// form: no sign and no leading zeros, so each number has exactly one ID.
func ParseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 || strconv.Itoa(n) != id {
		return 0, NewValidationError("id", id, ErrInvalidInput)
	}
	return n, nil
}

// NextID returns the ID for a new entity: one above the highest live ID,
// skipped forward past anything already present in used. Deleted IDs stay in
// used, so in practice IDs only grow.
func NextID[T any](entities map[string]T, used map[int]struct{}) string {
	maxID := 0
	for id := range entities {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}

	next := maxID + 1
	for {
		if _, taken := used[next]; !taken {
			break
		}
		next++
	}
	return strconv.Itoa(next)
}

// CompareIDs orders IDs numerically. Non-numeric IDs sort after numeric ones,
// lexicographically among themselves.
func CompareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}

// SortIDs sorts ids in place using CompareIDs.
func SortIDs(ids []string) {
	slices.SortFunc(ids, CompareIDs)
}
