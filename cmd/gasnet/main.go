// Command gasnet is an interactive inventory manager for a gas transport
// network: pipes, compressor stations and the connections between them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gasnet/internal/audit"
	"gasnet/internal/config"
	"gasnet/internal/repository"
	"gasnet/internal/repository/sqlite"
	"gasnet/internal/repository/textfile"
	"gasnet/internal/service"
	"gasnet/internal/shell"

	"github.com/dustin/go-humanize/english"
)

// ExitError is an error that carries a process exit code
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the command-line flags
type options struct {
	configPath  string
	backend     string
	dir         string
	dbPath      string
	auditPath   string
	auditFormat string
	logLevel    string
	logFormat   string
	keep        int
	pause       bool
	importPath  string
	writeConfig bool
}

// parseFlags parses args. A nil options with a nil error means help was shown.
func parseFlags(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("gasnet", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
gasnet - gas transport network inventory.

Usage:
  gasnet [options]

Options:
`)
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to the config file (default: search $"+config.EnvConfigPath+", ./"+config.ConfigFileName+", ...).")
	fs.StringVar(&opts.backend, "backend", "", "Storage backend. Options: 'text' or 'sqlite'.")
	fs.StringVar(&opts.dir, "dir", "", "Directory for text save files.")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite database path.")
	fs.StringVar(&opts.auditPath, "audit", "", "Audit log file. Use 'off' to disable.")
	fs.StringVar(&opts.auditFormat, "audit-format", "", "Audit log format. Options: 'text' or 'json'.")
	fs.StringVar(&opts.logLevel, "log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")
	fs.IntVar(&opts.keep, "keep", 0, "SQLite backend: snapshots kept per name, 0 keeps all.")
	fs.BoolVar(&opts.pause, "pause", true, "Wait for Enter after every menu action.")
	fs.StringVar(&opts.importPath, "import", "", "YAML or JSON export to import before the menu starts.")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective configuration to -config (default: "+config.DefaultConfigPath()+") and exit.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, fs, nil
		}
		return nil, fs, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, fs, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	return opts, fs, nil
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(opts *options, fs *flag.FlagSet) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		cfg, path, err = config.LoadFromPath(opts.configPath)
		if opts.writeConfig && errors.Is(err, os.ErrNotExist) {
			cfg, path, err = config.DefaultConfig(), "", nil
		}
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Storage.Backend = config.ParseBackend(opts.backend)
		case "dir":
			cfg.Storage.Dir = opts.dir
		case "db":
			cfg.Storage.SQLitePath = opts.dbPath
		case "keep":
			cfg.Storage.KeepSnapshots = opts.keep
		case "audit":
			if opts.auditPath == "off" {
				cfg.Audit.Path = ""
			} else {
				cfg.Audit.Path = opts.auditPath
			}
		case "audit-format":
			cfg.Audit.Format = strings.ToLower(opts.auditFormat)
		case "log-level":
			cfg.Log.Level = strings.ToLower(opts.logLevel)
		case "log-format":
			cfg.Log.Format = strings.ToLower(opts.logFormat)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// saveConfig saves cfg to path, or to the default config location when path
// is empty
func saveConfig(cfg *config.Config, path string, out io.Writer) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}

// newLogger creates a logger writing to outW. It does not set the global
// logger.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}

// openRepository opens the configured snapshot store
func openRepository(cfg *config.Config, logger *slog.Logger) (repository.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.Storage.SQLitePath, logger.With("component", "sqlite"))
	default:
		return textfile.New(cfg.Storage.Dir, logger.With("component", "textfile")), nil
	}
}

// run wires the application and runs the menu until the operator exits
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	opts, fs, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts == nil {
		return nil
	}

	cfg, cfgPath, err := loadConfig(opts, fs)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("config: %v", err)}
	}

	if opts.writeConfig {
		return saveConfig(cfg, opts.configPath, out)
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, errOut)
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	}
	logger.Debug("configuration", "summary", cfg.Summary())

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	eventBus := service.NewEventBus()
	eventBus.OnError(func(e service.Event, err error) {
		logger.Warn("failed to record event", "event", e.Type, "error", err)
	})
	if cfg.Audit.Path != "" {
		recorder, err := audit.NewFileRecorder(cfg.Audit.Path, audit.Format(cfg.Audit.Format))
		if err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("audit: %v", err)}
		}
		eventBus.Subscribe(recorder)
	}
	eventBus.Subscribe(audit.NewLogRecorder(logger.With("component", "audit"), slog.LevelDebug))

	svc := service.NewNetworkService(repo, eventBus, logger,
		service.WithProvisioner(service.FixedLengthProvisioner(cfg.Network.DefaultPipeLength)),
		service.WithSnapshotRetention(cfg.Storage.KeepSnapshots),
	)

	if opts.importPath != "" {
		report, err := svc.Import(opts.importPath)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		for _, m := range report.Malformed {
			logger.Warn("skipped invalid entry", "path", opts.importPath, "error", m)
		}
		fmt.Fprintf(out, "Imported %s, %s and %s from %s\n",
			english.Plural(report.Pipes, "pipe", ""),
			english.Plural(report.Stations, "compressor station", ""),
			english.Plural(report.Connections, "connection", ""),
			opts.importPath)
	}

	sh := shell.New(svc, in, out, logger, shell.Options{
		Diameters: cfg.Network.Diameters,
		Pause:     opts.pause,
	})
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
