// Package sqlite stores inventory snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
	"gasnet/internal/repository"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New opens (creating if needed) the database at dbPath
func New(dbPath string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, domain.IOError("open", dbPath, err)
	}
	// One connection keeps pragmas and :memory: databases consistent
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db, path: dbPath, logger: logger}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, domain.IOError("migrate", dbPath, err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS snapshots (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pipes (
		snapshot_id TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		length INTEGER NOT NULL,
		diametre INTEGER NOT NULL,
		repair_status INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (snapshot_id, id),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS stations (
		snapshot_id TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		workshop INTEGER NOT NULL,
		workshop_active INTEGER NOT NULL,
		effective INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, id),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name, seq);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Target describes where name is stored
func (r *Repository) Target(name string) string {
	return fmt.Sprintf("%s#%s", r.path, name)
}

// Save stores inv as a new snapshot named name
func (r *Repository) Save(ctx context.Context, name string, inv *domain.Inventory) error {
	if err := repository.ValidateName(name); err != nil {
		return err
	}
	target := r.Target(name)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.IOError("begin", target, err)
	}
	defer tx.Rollback()

	snapshotID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, saved_at) VALUES (?, ?, ?)
	`, snapshotID, name, time.Now().UnixNano()); err != nil {
		return domain.IOError("insert snapshot", target, err)
	}

	pipeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pipes (snapshot_id, id, name, length, diametre, repair_status)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return domain.IOError("prepare", target, err)
	}
	defer pipeStmt.Close()

	for _, p := range inv.Pipes {
		if _, err := pipeStmt.ExecContext(ctx, pipeInsertArgs(snapshotID, p)...); err != nil {
			return domain.IOError("insert pipe "+p.ID, target, err)
		}
	}

	stationStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (snapshot_id, id, name, workshop, workshop_active, effective)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return domain.IOError("prepare", target, err)
	}
	defer stationStmt.Close()

	for _, s := range inv.Stations {
		if _, err := stationStmt.ExecContext(ctx, stationInsertArgs(snapshotID, s)...); err != nil {
			return domain.IOError("insert station "+s.ID, target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.IOError("commit", target, err)
	}

	r.logger.Debug("snapshot saved", "name", name, "snapshot", snapshotID,
		"pipes", len(inv.Pipes), "stations", len(inv.Stations))
	return nil
}

// Load reads the newest snapshot named name
func (r *Repository) Load(ctx context.Context, name string) (*codec.Decoded, error) {
	if err := repository.ValidateName(name); err != nil {
		return nil, err
	}
	target := r.Target(name)

	var snapshotID string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM snapshots WHERE name = ? ORDER BY seq DESC LIMIT 1
	`, name).Scan(&snapshotID)
	if err == sql.ErrNoRows {
		return nil, domain.IOError("open", target, &domain.NotFoundError{Kind: "snapshot", ID: name})
	}
	if err != nil {
		return nil, domain.IOError("query snapshot", target, err)
	}

	decoded := &codec.Decoded{Inventory: domain.NewInventory()}
	if err := r.loadPipes(ctx, snapshotID, decoded); err != nil {
		return nil, domain.IOError("read", target, err)
	}
	if err := r.loadStations(ctx, snapshotID, decoded); err != nil {
		return nil, domain.IOError("read", target, err)
	}

	r.logger.Debug("snapshot loaded", "name", name, "snapshot", snapshotID,
		"pipes", len(decoded.Inventory.Pipes),
		"stations", len(decoded.Inventory.Stations),
		"malformed", len(decoded.Malformed))
	return decoded, nil
}

func (r *Repository) loadPipes(ctx context.Context, snapshotID string, decoded *codec.Decoded) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pipeColumns+` FROM pipes WHERE snapshot_id = ?
	`, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to query pipes: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
		var row pipeRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return fmt.Errorf("failed to scan pipe: %w", err)
		}
		pipe := row.toDomain()
		if err := pipe.Validate(); err != nil {
			decoded.Malformed = append(decoded.Malformed, &domain.MalformedRecordError{
				Line: n, Section: "pipe", Text: row.String(), Err: err,
			})
			continue
		}
		decoded.Inventory.AddPipe(pipe)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating pipes: %w", err)
	}

	decoded.Inventory.Sort()
	return nil
}

func (r *Repository) loadStations(ctx context.Context, snapshotID string, decoded *codec.Decoded) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+stationColumns+` FROM stations WHERE snapshot_id = ?
	`, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
		var row stationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return fmt.Errorf("failed to scan station: %w", err)
		}
		station := row.toDomain()
		if err := station.Validate(); err != nil {
			decoded.Malformed = append(decoded.Malformed, &domain.MalformedRecordError{
				Line: n, Section: "compressor station", Text: row.String(), Err: err,
			})
			continue
		}
		decoded.Inventory.AddStation(station)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating stations: %w", err)
	}

	decoded.Inventory.Sort()
	return nil
}

// List returns the newest snapshot of every name, newest first
func (r *Repository) List(ctx context.Context) ([]repository.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.saved_at FROM snapshots s
		WHERE s.seq = (SELECT MAX(seq) FROM snapshots WHERE name = s.name)
		ORDER BY s.seq DESC
	`)
	if err != nil {
		return nil, domain.IOError("list", r.path, err)
	}
	defer rows.Close()

	var snapshots []repository.Snapshot
	for rows.Next() {
		var (
			id, name string
			savedAt  int64
		)
		if err := rows.Scan(&id, &name, &savedAt); err != nil {
			return nil, domain.IOError("scan snapshot", r.path, err)
		}
		snapshots = append(snapshots, repository.Snapshot{
			Name:     name,
			Location: id,
			SavedAt:  time.Unix(0, savedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.IOError("list", r.path, err)
	}
	return snapshots, nil
}

// Prune deletes all but the newest keep snapshots of name
func (r *Repository) Prune(ctx context.Context, name string, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE name = ? AND seq NOT IN (
			SELECT seq FROM snapshots WHERE name = ? ORDER BY seq DESC LIMIT ?
		)
	`, name, name, keep)
	if err != nil {
		return 0, domain.IOError("prune", r.Target(name), err)
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
