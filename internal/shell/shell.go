package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gasnet/internal/domain"
	"gasnet/internal/service"

	"github.com/dustin/go-humanize/english"
)

// Options tunes the shell
type Options struct {
	// Diameters are offered in the connect prompt
	Diameters []int
	// Pause waits for Enter after every action
	Pause bool
}

// Shell runs the menu loop
type Shell struct {
	svc    *service.NetworkService
	in     *bufio.Scanner
	out    io.Writer
	opts   Options
	logger *slog.Logger
}

// New creates a shell reading answers from in and writing to out
func New(svc *service.NetworkService, in io.Reader, out io.Writer, logger *slog.Logger, opts Options) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Diameters) == 0 {
		opts.Diameters = domain.StandardDiametres
	}
	scanner := bufio.NewScanner(readerOrEmpty(in))
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	return &Shell{svc: svc, in: scanner, out: out, opts: opts, logger: logger}
}

const menu = `1. Create a pipe
2. Create a CS
3. View all objects
4. Edit a pipe
5. Delete a pipe
6. Edit a CS
7. Delete a CS
8. Connect CS with pipe
9. Topological Sort
10. Save
11. Load
12. Show connections
13. Export
14. Import
0. Exit
Choice item of menu: `

// Run shows the menu until the operator exits or input ends. Service errors
// are printed; only a failure to read input is returned.
func (s *Shell) Run(ctx context.Context) error {
	actions := map[int]func(context.Context) error{
		1:  s.createPipe,
		2:  s.createStation,
		3:  s.viewAll,
		4:  s.editPipe,
		5:  s.deletePipe,
		6:  s.editStation,
		7:  s.deleteStation,
		8:  s.connect,
		9:  s.topologicalSort,
		10: s.save,
		11: s.load,
		12: s.showConnections,
		13: s.export,
		14: s.importFile,
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := s.line(menu)
		if err != nil {
			return ignoreClosed(err)
		}
		input = strings.TrimSpace(input)
		if !isNumber(input) {
			fmt.Fprintln(s.out, "Please input a valid number.")
			continue
		}
		choice, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(s.out, "Please input a valid number.")
			continue
		}
		if choice == 0 {
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			fmt.Fprintln(s.out, "Incorrect choice.")
			continue
		}
		if err := action(ctx); err != nil {
			return ignoreClosed(err)
		}
		if err := s.pause(); err != nil {
			return ignoreClosed(err)
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

// report prints a service error. Input errors are passed back to Run.
func (s *Shell) report(err error) error {
	if errors.Is(err, errInputClosed) {
		return err
	}
	s.logger.Debug("operation failed", "error", err)
	fmt.Fprintf(s.out, "Error: %v\n", err)
	return nil
}

// ============================================================================
// Pipes
// ============================================================================

func (s *Shell) createPipe(context.Context) error {
	fmt.Fprintf(s.out, "Next available ID for new pipe: %s\n", s.svc.NextPipeID())
	name, err := s.name("Please, enter name of your pipe >> ")
	if err != nil {
		return err
	}
	length, err := s.number("Please, enter length of your pipe >> ", 1)
	if err != nil {
		return err
	}
	diametre, err := s.number("Please, enter diametre of your pipe >> ", 1)
	if err != nil {
		return err
	}
	repair, err := s.flag("Please, enter repair status of your pipe (0 for No, 1 for Yes) >> ")
	if err != nil {
		return err
	}

	pipe, err := s.svc.CreatePipe(domain.PipeSpec{Name: name, Length: length, Diametre: diametre, RepairStatus: repair})
	if err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Pipe created with ID: %s\n", pipe.ID)
	return nil
}

func (s *Shell) editPipe(context.Context) error {
	pipes := s.svc.Pipes()
	s.showPipes(pipes)
	if len(pipes) == 0 {
		fmt.Fprintln(s.out, "No pipe to edit.")
		return nil
	}

	id, err := s.line("Enter the ID of the pipe you want to edit: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if _, err := s.svc.Pipe(id); err != nil {
		fmt.Fprintln(s.out, "pipe not found.")
		return nil
	}

	repair, err := s.flag("Please, enter new repair status of your pipe (0 for No, 1 for Yes) >> ")
	if err != nil {
		return err
	}
	if _, err := s.svc.EditPipe(id, repair); err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Pipe with ID: %s edited\n", id)
	return nil
}

func (s *Shell) deletePipe(context.Context) error {
	pipes := s.svc.Pipes()
	s.showPipes(pipes)
	if len(pipes) == 0 {
		fmt.Fprintln(s.out, "No pipe to delete.")
		return nil
	}

	id, err := s.line("Enter the ID of the pipe you want to delete: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := s.svc.DeletePipe(id); err != nil {
		fmt.Fprintf(s.out, "pipe with ID %s not found.\n", id)
		return nil
	}
	fmt.Fprintf(s.out, "pipe with ID %s has been deleted.\n", id)
	return nil
}

// ============================================================================
// Compressor Stations
// ============================================================================

func (s *Shell) createStation(context.Context) error {
	fmt.Fprintf(s.out, "Next available ID for new Compressor Station: %s\n", s.svc.NextStationID())
	name, err := s.name("Please, enter name of your CS >> ")
	if err != nil {
		return err
	}
	workshop, err := s.number("Please, enter amount of workshops of your CS >> ", 1)
	if err != nil {
		return err
	}
	active, err := s.activeWorkshops("Please, enter amount of active workshops of your CS >> ", workshop)
	if err != nil {
		return err
	}
	effective, err := s.number("Please, enter effectiveness of your CS >> ", 1)
	if err != nil {
		return err
	}

	cs, err := s.svc.CreateStation(domain.StationSpec{
		Name: name, Workshop: workshop, WorkshopActive: active, Effective: effective,
	})
	if err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Compressor Station created with ID: %s\n", cs.ID)
	return nil
}

// activeWorkshops asks until the answer does not exceed total
func (s *Shell) activeWorkshops(prompt string, total int) (int, error) {
	for {
		active, err := s.number(prompt, 0)
		if err != nil {
			return 0, err
		}
		if active <= total {
			return active, nil
		}
		fmt.Fprint(s.out, "Number of active workshops cannot be greater than total workshops. ")
	}
}

func (s *Shell) editStation(context.Context) error {
	stations := s.svc.Stations()
	s.showStations(stations)
	if len(stations) == 0 {
		fmt.Fprintln(s.out, "No CS to edit.")
		return nil
	}

	id, err := s.line("Enter the ID of the CS you want to edit: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	cs, err := s.svc.Station(id)
	if err != nil {
		fmt.Fprintln(s.out, "CS not found.")
		return nil
	}

	active, err := s.activeWorkshops("Please, enter new amount of active workshops of your CS >> ", cs.Workshop)
	if err != nil {
		return err
	}
	if _, err := s.svc.EditStation(id, active); err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Compressor Station with ID: %s edited\n", id)
	return nil
}

func (s *Shell) deleteStation(context.Context) error {
	stations := s.svc.Stations()
	s.showStations(stations)
	if len(stations) == 0 {
		fmt.Fprintln(s.out, "No CS to delete.")
		return nil
	}

	id, err := s.line("Enter the ID of the CS you want to delete: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := s.svc.DeleteStation(id); err != nil {
		fmt.Fprintf(s.out, "CS with ID %s not found.\n", id)
		return nil
	}
	fmt.Fprintf(s.out, "CS with ID %s has been deleted.\n", id)
	return nil
}

// ============================================================================
// Graph
// ============================================================================

func (s *Shell) connect(context.Context) error {
	from, err := s.line("Enter ID of the first CS: ")
	if err != nil {
		return err
	}
	to, err := s.line("Enter ID of the second CS: ")
	if err != nil {
		return err
	}
	diameter, err := s.number(fmt.Sprintf("Enter diameter of the pipe (%s): ", joinInts(s.opts.Diameters)), 1)
	if err != nil {
		return err
	}

	conn, err := s.svc.ConnectWith(strings.TrimSpace(from), strings.TrimSpace(to), diameter, s.provisionPipe)
	switch {
	case errors.Is(err, domain.ErrUnknownStation):
		fmt.Fprintln(s.out, "Invalid station IDs.")
		return nil
	case err != nil:
		return s.report(err)
	}

	fmt.Fprintf(s.out, "Connected %s to %s with a pipe of diameter: %d\n", conn.From, conn.To, conn.Diameter)
	if conn.Reused {
		fmt.Fprintf(s.out, "Reused pipe %s\n", conn.PipeID)
	} else {
		fmt.Fprintf(s.out, "Pipe created with ID: %s\n", conn.PipeID)
	}
	return nil
}

// provisionPipe asks for the pipe connect has to create
func (s *Shell) provisionPipe(diametre int) (domain.PipeSpec, error) {
	fmt.Fprintf(s.out, "No available pipe of diameter %d. Next available ID for new pipe: %s\n",
		diametre, s.svc.NextPipeID())
	name, err := s.name("Please, enter name of your pipe >> ")
	if err != nil {
		return domain.PipeSpec{}, err
	}
	length, err := s.number("Please, enter length of your pipe >> ", 1)
	if err != nil {
		return domain.PipeSpec{}, err
	}
	return domain.PipeSpec{Name: name, Length: length, Diametre: diametre}, nil
}

func (s *Shell) topologicalSort(context.Context) error {
	order, err := s.svc.TopologicalOrder()
	if err != nil {
		var cycle *domain.CycleError
		if errors.As(err, &cycle) {
			fmt.Fprintf(s.out, "Cannot sort stations, %v\n", err)
			return nil
		}
		return s.report(err)
	}

	fmt.Fprint(s.out, "Topological Sort Order: ")
	for _, id := range order {
		fmt.Fprintf(s.out, "%s ", id)
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) showConnections(context.Context) error {
	edges := s.svc.Connections()
	if len(edges) == 0 {
		fmt.Fprintln(s.out, "No connections.")
		return nil
	}
	fmt.Fprintln(s.out, "Connections:")
	for _, e := range edges {
		fmt.Fprintf(s.out, "  %s via pipe %s\n", e, e.PipeID)
	}
	return nil
}

// ============================================================================
// Persistence
// ============================================================================

func (s *Shell) save(ctx context.Context) error {
	s.showSnapshots(ctx)
	name, err := s.line("Enter the filename (without extension): ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := s.svc.Save(ctx, name); err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Data saved to %s\n", s.svc.Target(name))
	return nil
}

func (s *Shell) load(ctx context.Context) error {
	s.showSnapshots(ctx)
	name, err := s.line("Enter the filename (without extension): ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	report, err := s.svc.Load(ctx, name)
	if err != nil {
		return s.report(err)
	}
	s.showReport(report)
	fmt.Fprintf(s.out, "Data loaded from %s\n", report.Target)
	fmt.Fprintf(s.out, "Read %s, %s\n",
		english.Plural(report.Pipes, "pipe", ""),
		english.Plural(report.Stations, "compressor station", ""))
	return nil
}

func (s *Shell) importFile(context.Context) error {
	path, err := s.line("Enter the file to import (.yaml, .yml or .json): ")
	if err != nil {
		return err
	}

	report, err := s.svc.Import(strings.TrimSpace(path))
	if err != nil {
		return s.report(err)
	}
	s.showReport(report)
	fmt.Fprintf(s.out, "Data imported from %s\n", report.Target)
	fmt.Fprintf(s.out, "Read %s, %s, %s\n",
		english.Plural(report.Pipes, "pipe", ""),
		english.Plural(report.Stations, "compressor station", ""),
		english.Plural(report.Connections, "connection", ""))
	return nil
}

func (s *Shell) showReport(report service.LoadReport) {
	for _, m := range report.Malformed {
		fmt.Fprintf(s.out, "Invalid data for %s: %s - Error: %v\n", m.Section, m.Text, m.Err)
	}
}

func (s *Shell) export(context.Context) error {
	formats := service.ExportFormats()
	format, err := s.line(fmt.Sprintf("Enter export format (%s): ", strings.Join(formats, ", ")))
	if err != nil {
		return err
	}
	path, err := s.line("Enter the output file (empty for screen): ")
	if err != nil {
		return err
	}
	format, path = strings.TrimSpace(format), strings.TrimSpace(path)

	if path == "" {
		if err := s.svc.Export(s.out, format); err != nil {
			return s.report(err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return s.report(domain.IOError("create", path, err))
	}
	if err := s.svc.Export(f, format); err != nil {
		f.Close()
		os.Remove(path)
		return s.report(err)
	}
	if err := f.Close(); err != nil {
		return s.report(domain.IOError("close", path, err))
	}
	fmt.Fprintf(s.out, "Exported to %s\n", path)
	return nil
}
