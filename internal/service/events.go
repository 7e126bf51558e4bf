package service

import (
	"fmt"
	"time"
)

// EventType defines the type of event
type EventType string

const (
	EventPipeCreated          EventType = "pipe_created"
	EventPipeEdited           EventType = "pipe_edited"
	EventPipeDeleted          EventType = "pipe_deleted"
	EventPipeDeleteMissing    EventType = "pipe_delete_missing"
	EventStationCreated       EventType = "station_created"
	EventStationEdited        EventType = "station_edited"
	EventStationDeleted       EventType = "station_deleted"
	EventStationDeleteMissing EventType = "station_delete_missing"
	EventStationsConnected    EventType = "stations_connected"
	EventDataSaved            EventType = "data_saved"
	EventDataLoaded           EventType = "data_loaded"
	EventDataImported         EventType = "data_imported"
)

// Event represents an event that occurred in the system. Message is the
// human-readable action written to the audit log.
type Event struct {
	Type    EventType         `json:"type"`
	Message string            `json:"message"`
	Payload map[string]string `json:"payload,omitempty"`
	Time    time.Time         `json:"time"`
}

// Recorder receives published events
type Recorder interface {
	Record(Event) error
}

// RecorderFunc adapts a function to the Recorder interface
type RecorderFunc func(Event) error

// Record calls f(e)
func (f RecorderFunc) Record(e Event) error {
	return f(e)
}

// EventBus fans events out to its recorders
type EventBus struct {
	subscribers []Recorder
	now         func() time.Time
	onError     func(Event, error)
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]Recorder, 0),
		now:         time.Now,
	}
}

// Subscribe adds a recorder to receive events
func (eb *EventBus) Subscribe(r Recorder) {
	eb.subscribers = append(eb.subscribers, r)
}

// OnError sets the callback invoked when a recorder fails. Recording errors
// never fail the operation that published the event.
func (eb *EventBus) OnError(fn func(Event, error)) {
	eb.onError = fn
}

// Publish stamps the event and delivers it to every recorder in order
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	if event.Time.IsZero() {
		event.Time = eb.now()
	}
	for _, r := range eb.subscribers {
		if err := r.Record(event); err != nil && eb.onError != nil {
			eb.onError(event, err)
		}
	}
}

func newEvent(t EventType, payload map[string]string, format string, args ...any) Event {
	return Event{Type: t, Message: fmt.Sprintf(format, args...), Payload: payload}
}
