package audit

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gasnet/internal/domain"
	"gasnet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(msg string) service.Event {
	return service.Event{
		Type:    service.EventPipeCreated,
		Message: msg,
		Payload: map[string]string{"pipe_id": "1"},
		Time:    time.Date(2024, 5, 17, 9, 3, 7, 0, time.Local),
	}
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "2024-05-17 09:03:07 - Pipe created with ID: 1", FormatLine(testEvent("Pipe created with ID: 1")))
}

func TestFileRecorderAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0644))

	rec, err := NewFileRecorder(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, rec.Path())

	require.NoError(t, rec.Record(testEvent("Pipe created with ID: 1")))
	require.NoError(t, rec.Record(testEvent("Pipe with ID: 1 edited")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier\n"+
		"2024-05-17 09:03:07 - Pipe created with ID: 1\n"+
		"2024-05-17 09:03:07 - Pipe with ID: 1 edited\n", string(data))
}

func TestFileRecorderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	rec, err := NewFileRecorder(path, FormatJSON)
	require.NoError(t, err)
	require.NoError(t, rec.Record(testEvent("Data saved to net.txt")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got service.Event
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &got))
	assert.Equal(t, "Data saved to net.txt", got.Message)
	assert.Equal(t, service.EventPipeCreated, got.Type)
}

func TestFileRecorderErrors(t *testing.T) {
	_, err := NewFileRecorder("x", "xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "missing", "logs.txt"), FormatText)
	require.NoError(t, err)
	assert.ErrorIs(t, rec.Record(testEvent("x")), domain.ErrIOFailure)
}

func TestJSONRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewJSONRecorder(&buf)
	require.NoError(t, rec.Record(testEvent("a")))
	require.NoError(t, rec.Record(testEvent("b")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"message":"b"`)
}

func TestLogRecorder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	require.NoError(t, NewLogRecorder(logger, slog.LevelDebug).Record(testEvent("Pipe created with ID: 1")))
	out := buf.String()
	assert.Contains(t, out, `msg="Pipe created with ID: 1"`)
	assert.Contains(t, out, "event=pipe_created")
	assert.Contains(t, out, "pipe_id=1")
	assert.Contains(t, out, "level=DEBUG")
}

func TestBusDeliversToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	rec, err := NewFileRecorder(path, FormatText)
	require.NoError(t, err)

	bus := service.NewEventBus()
	bus.Subscribe(rec)
	svc := service.NewNetworkService(nil, bus, nil)
	_, err = svc.CreatePipe(domain.PipeSpec{Name: "p", Length: 1, Diametre: 500})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - Pipe created with ID: 1\n$`, string(data))
}
