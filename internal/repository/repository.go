package repository

import (
	"context"
	"strings"
	"time"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
)

// Snapshot describes a saved inventory
type Snapshot struct {
	Name     string
	Location string
	SavedAt  time.Time
}

// Repository defines the interface for inventory persistence
type Repository interface {
	// Save stores inv under name, replacing what a later Load(name) returns
	Save(ctx context.Context, name string, inv *domain.Inventory) error
	// Load reads the inventory stored under name
	Load(ctx context.Context, name string) (*codec.Decoded, error)
	// List returns the saved snapshots, newest first
	List(ctx context.Context) ([]Snapshot, error)
	// Target describes where name is stored, for messages and audit records
	Target(name string) string
	// Close releases resources
	Close() error
}

// ValidateName rejects snapshot names that are empty or would escape the
// storage location.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return domain.NewValidationError("name", name, domain.ErrInvalidInput)
	}
	return nil
}
