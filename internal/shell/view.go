package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gasnet/internal/domain"

	"github.com/dustin/go-humanize"
)

func (s *Shell) viewAll(context.Context) error {
	pipes, stations := s.svc.Pipes(), s.svc.Stations()
	if len(pipes) == 0 && len(stations) == 0 {
		fmt.Fprintln(s.out, "Nothing created.")
		return nil
	}

	sum := s.svc.Summary()
	fmt.Fprintf(s.out, "Pipes: %s (%s under repair), Compressor Stations: %s, Connections: %s\n",
		humanize.Comma(int64(sum.Pipes)), humanize.Comma(int64(sum.PipesUnderRepair)),
		humanize.Comma(int64(sum.Stations)), humanize.Comma(int64(sum.Connections)))
	s.showPipes(pipes)
	s.showStations(stations)
	return nil
}

func (s *Shell) showPipes(pipes []domain.Pipe) {
	if len(pipes) == 0 {
		fmt.Fprintln(s.out, "No Pipes available.")
		return
	}

	fmt.Fprintln(s.out, "List of Pipes:")
	total := 0
	for _, p := range pipes {
		fmt.Fprintf(s.out, "ID: %s\n", p.ID)
		fmt.Fprintf(s.out, "    Name: %s\n", p.Name)
		fmt.Fprintf(s.out, "    Length: %s\n", humanize.Comma(int64(p.Length)))
		fmt.Fprintf(s.out, "    Diametre: %d\n", p.Diametre)
		fmt.Fprintf(s.out, "    Repair Status: %s\n", p.RepairLabel())
		total += p.Length
	}
	fmt.Fprintf(s.out, "Total length: %s\n", humanize.Comma(int64(total)))
}

func (s *Shell) showStations(stations []domain.CompressorStation) {
	if len(stations) == 0 {
		fmt.Fprintln(s.out, "No Compressor Stations available.")
		return
	}

	fmt.Fprintln(s.out, "List of Compressor Stations:")
	for _, cs := range stations {
		fmt.Fprintf(s.out, "ID: %s\n", cs.ID)
		fmt.Fprintf(s.out, "    Name: %s\n", cs.Name)
		fmt.Fprintf(s.out, "    Workshops: %d\n", cs.Workshop)
		fmt.Fprintf(s.out, "    Workshops in active: %d\n", cs.WorkshopActive)
		fmt.Fprintf(s.out, "    Effective: %d\n", cs.Effective)
	}
}

// showSnapshots lists saved names with their age. Listing failures are
// logged only; the operator can still type a name.
func (s *Shell) showSnapshots(ctx context.Context) {
	snapshots, err := s.svc.Snapshots(ctx)
	if err != nil {
		s.logger.Debug("failed to list snapshots", "error", err)
		return
	}
	if len(snapshots) == 0 {
		return
	}

	fmt.Fprintln(s.out, "Saved:")
	for _, snap := range snapshots {
		fmt.Fprintf(s.out, "  %s (%s)\n", snap.Name, humanize.Time(snap.SavedAt))
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
