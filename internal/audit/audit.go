// Package audit records network events for the operator.
//
// FileRecorder appends one line per event to a text file in the format
//
//	2006-01-02 15:04:05 - Pipe created with ID: 1
//
// using local time. JSONRecorder writes the same events as JSON lines and
// LogRecorder forwards them to a slog.Logger.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"gasnet/internal/domain"
	"gasnet/internal/service"
)

// TimeLayout is the timestamp format of audit lines
const TimeLayout = "2006-01-02 15:04:05"

// Format selects how a file recorder renders events
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// FormatLine renders an event as an audit line, without the newline
func FormatLine(e service.Event) string {
	return fmt.Sprintf("%s - %s", e.Time.Local().Format(TimeLayout), e.Message)
}

// FileRecorder appends events to a file, opening it for every record so the
// file can be rotated or removed while the program runs
type FileRecorder struct {
	mu     sync.Mutex
	path   string
	format Format
}

// NewFileRecorder creates a recorder appending to path
func NewFileRecorder(path string, format Format) (*FileRecorder, error) {
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, domain.NewValidationError("audit.format", string(format), domain.ErrInvalidInput)
	}
	return &FileRecorder{path: path, format: format}, nil
}

// Path returns the file being written
func (r *FileRecorder) Path() string {
	return r.path
}

// Record appends e to the file
func (r *FileRecorder) Record(e service.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return domain.IOError("open", r.path, err)
	}

	if r.format == FormatJSON {
		err = writeJSON(f, e)
	} else {
		_, err = fmt.Fprintln(f, FormatLine(e))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return domain.IOError("write", r.path, err)
	}
	return nil
}

// JSONRecorder writes each event as one JSON object per line
type JSONRecorder struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONRecorder creates a recorder writing to w
func NewJSONRecorder(w io.Writer) *JSONRecorder {
	return &JSONRecorder{w: w}
}

// Record writes e
func (r *JSONRecorder) Record(e service.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.w, e)
}

func writeJSON(w io.Writer, e service.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// LogRecorder forwards events to a structured logger
type LogRecorder struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogRecorder creates a recorder logging to logger at level
func NewLogRecorder(logger *slog.Logger, level slog.Level) *LogRecorder {
	return &LogRecorder{logger: logger, level: level}
}

// Record logs e
func (r *LogRecorder) Record(e service.Event) error {
	attrs := make([]any, 0, 2+2*len(e.Payload))
	attrs = append(attrs, "event", string(e.Type))
	for _, k := range slices.Sorted(maps.Keys(e.Payload)) {
		attrs = append(attrs, k, e.Payload[k])
	}
	r.logger.Log(context.Background(), r.level, e.Message, attrs...)
	return nil
}
