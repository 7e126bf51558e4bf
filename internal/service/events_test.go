package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return fixed }

	var first, second []Event
	bus.Subscribe(RecorderFunc(func(e Event) error {
		first = append(first, e)
		return nil
	}))
	bus.Subscribe(RecorderFunc(func(e Event) error {
		second = append(second, e)
		return nil
	}))

	bus.Publish(newEvent(EventPipeCreated, nil, "Pipe created with ID: %s", "3"))

	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "Pipe created with ID: 3", first[0].Message)
	assert.Equal(t, fixed, first[0].Time)
}

func TestEventBusRecorderErrors(t *testing.T) {
	bus := NewEventBus()
	failure := errors.New("disk full")

	delivered := 0
	bus.Subscribe(RecorderFunc(func(Event) error { return failure }))
	bus.Subscribe(RecorderFunc(func(Event) error {
		delivered++
		return nil
	}))

	var reported error
	bus.OnError(func(_ Event, err error) { reported = err })

	bus.Publish(Event{Type: EventDataSaved, Message: "Data saved to x"})
	assert.Equal(t, 1, delivered)
	assert.ErrorIs(t, reported, failure)
}

func TestNilEventBus(t *testing.T) {
	var bus *EventBus
	assert.NotPanics(t, func() {
		bus.Publish(Event{Type: EventDataLoaded})
	})
}
