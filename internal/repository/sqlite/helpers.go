package sqlite

import (
	"fmt"

	"gasnet/internal/domain"
)

// ============================================================================
// Column Order
// ============================================================================
//
// CRITICAL: column order must match between the *Columns constants, the
// scanArgs() slices and the *InsertArgs() helpers below.

const (
	pipeColumns    = `id, name, length, diametre, repair_status`
	stationColumns = `id, name, workshop, workshop_active, effective`
)

// boolToInt stores booleans the way the text format does
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// Pipe Row Scanner
// ============================================================================

type pipeRow struct {
	ID           string
	Name         string
	Length       int
	Diametre     int
	RepairStatus int
}

func (r *pipeRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.Length, &r.Diametre, &r.RepairStatus}
}

func (r *pipeRow) toDomain() domain.Pipe {
	return domain.Pipe{
		ID:           r.ID,
		Name:         r.Name,
		Length:       r.Length,
		Diametre:     r.Diametre,
		RepairStatus: r.RepairStatus != 0,
	}
}

func (r *pipeRow) String() string {
	return fmt.Sprintf("%s,%s,%d,%d,%d", r.ID, r.Name, r.Length, r.Diametre, r.RepairStatus)
}

func pipeInsertArgs(snapshotID string, p domain.Pipe) []any {
	return []any{snapshotID, p.ID, p.Name, p.Length, p.Diametre, boolToInt(p.RepairStatus)}
}

// ============================================================================
// Station Row Scanner
// ============================================================================

type stationRow struct {
	ID             string
	Name           string
	Workshop       int
	WorkshopActive int
	Effective      int
}

func (r *stationRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.Workshop, &r.WorkshopActive, &r.Effective}
}

func (r *stationRow) toDomain() domain.CompressorStation {
	return domain.CompressorStation{
		ID:             r.ID,
		Name:           r.Name,
		Workshop:       r.Workshop,
		WorkshopActive: r.WorkshopActive,
		Effective:      r.Effective,
	}
}

func (r *stationRow) String() string {
	return fmt.Sprintf("%s,%s,%d,%d,%d", r.ID, r.Name, r.Workshop, r.WorkshopActive, r.Effective)
}

func stationInsertArgs(snapshotID string, s domain.CompressorStation) []any {
	return []any{snapshotID, s.ID, s.Name, s.Workshop, s.WorkshopActive, s.Effective}
}
