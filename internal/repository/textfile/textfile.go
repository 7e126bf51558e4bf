// Package textfile stores inventories as flat text files, one per name.
package textfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
	"gasnet/internal/repository"
)

// Extension is appended to every snapshot name
const Extension = ".txt"

// Repository implements repository.Repository on a directory of text files
type Repository struct {
	dir    string
	codec  codec.Codec
	logger *slog.Logger
}

// New creates a repository rooted at dir
func New(dir string, logger *slog.Logger) *Repository {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		dir:    dir,
		codec:  codec.NewTextCodec(),
		logger: logger,
	}
}

// Target returns the file path for name
func (r *Repository) Target(name string) string {
	return filepath.Join(r.dir, name+Extension)
}

// Save writes the inventory to a temporary file in the same directory and
// renames it into place, so an existing file is only replaced by a complete one.
func (r *Repository) Save(ctx context.Context, name string, inv *domain.Inventory) (err error) {
	if err := repository.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.Target(name)
	tmp, err := os.CreateTemp(r.dir, "."+name+"-*"+Extension)
	if err != nil {
		return domain.IOError("open", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = r.codec.Encode(tmp, inv); err != nil {
		return domain.IOError("write", path, err)
	}
	if err = tmp.Close(); err != nil {
		return domain.IOError("close", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return domain.IOError("rename", path, err)
	}

	r.logger.Debug("inventory written", "path", path,
		"pipes", len(inv.Pipes), "stations", len(inv.Stations))
	return nil
}

// Load reads the file for name
func (r *Repository) Load(ctx context.Context, name string) (*codec.Decoded, error) {
	if err := repository.ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.Target(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.IOError("open", path, err)
	}
	defer f.Close()

	decoded, err := r.codec.Decode(f)
	if err != nil {
		return nil, domain.IOError("read", path, err)
	}

	r.logger.Debug("inventory read", "path", path,
		"pipes", len(decoded.Inventory.Pipes),
		"stations", len(decoded.Inventory.Stations),
		"malformed", len(decoded.Malformed))
	return decoded, nil
}

// List returns the text files in the directory, newest first
func (r *Repository) List(ctx context.Context) ([]repository.Snapshot, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.IOError("list", r.dir, err)
	}

	var snapshots []repository.Snapshot
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, domain.IOError("stat", name, err)
		}
		snapshots = append(snapshots, repository.Snapshot{
			Name:     strings.TrimSuffix(name, Extension),
			Location: filepath.Join(r.dir, name),
			SavedAt:  info.ModTime(),
		})
	}

	slices.SortFunc(snapshots, func(a, b repository.Snapshot) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return snapshots, nil
}

// Close is a no-op; files are closed after every operation
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) String() string {
	return fmt.Sprintf("text files in %s", r.dir)
}
