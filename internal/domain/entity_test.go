package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec PipeSpec
		want error
	}{
		{"valid", PipeSpec{Name: "P-1", Length: 10, Diametre: 700}, nil},
		{"empty name allowed", PipeSpec{Length: 1, Diametre: 500}, nil},
		{"zero length", PipeSpec{Name: "p", Length: 0, Diametre: 700}, ErrInvalidInput},
		{"negative diametre", PipeSpec{Name: "p", Length: 3, Diametre: -1}, ErrInvalidInput},
		{"newline in name", PipeSpec{Name: "a\nb", Length: 3, Diametre: 500}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPipeAvailable(t *testing.T) {
	p := NewPipe("1", PipeSpec{Name: "main", Length: 5, Diametre: 700})

	assert.True(t, p.Available(700))
	assert.False(t, p.Available(500))

	p.RepairStatus = true
	assert.False(t, p.Available(700))
	assert.Equal(t, "Yes", p.RepairLabel())
}

func TestStationSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec StationSpec
		want error
	}{
		{"valid", StationSpec{Name: "CS", Workshop: 5, WorkshopActive: 3, Effective: 80}, nil},
		{"all active", StationSpec{Name: "CS", Workshop: 5, WorkshopActive: 5, Effective: 1}, nil},
		{"none active", StationSpec{Name: "CS", Workshop: 5, WorkshopActive: 0, Effective: 1}, nil},
		{"active exceeds total", StationSpec{Name: "CS", Workshop: 2, WorkshopActive: 3, Effective: 1}, ErrInvariantViolation},
		{"negative active", StationSpec{Name: "CS", Workshop: 2, WorkshopActive: -1, Effective: 1}, ErrInvalidInput},
		{"zero workshops", StationSpec{Name: "CS", Workshop: 0, Effective: 1}, ErrInvalidInput},
		{"zero effective", StationSpec{Name: "CS", Workshop: 1, Effective: 0}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStationWithActive(t *testing.T) {
	s := NewStation("1", StationSpec{Name: "CS", Workshop: 4, WorkshopActive: 1, Effective: 9})

	updated, err := s.WithActive(4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.WorkshopActive)
	assert.Equal(t, 1, s.WorkshopActive, "receiver must not change")
	assert.Equal(t, 0, updated.Idle())

	_, err = s.WithActive(5)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "workshop_active", verr.Field)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestErrorWrapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := &NotFoundError{Kind: "pipe", ID: "3"}
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "pipe with ID 3 not found", err.Error())
	})

	t.Run("malformed record matches both causes", func(t *testing.T) {
		cause := errors.New("bad length")
		err := &MalformedRecordError{Line: 2, Section: "pipe", Text: "1,a,x,700,0", Err: cause}
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("cycle", func(t *testing.T) {
		err := &CycleError{Path: []string{"1", "2", "1"}}
		assert.ErrorIs(t, err, ErrCycleDetected)
		assert.Equal(t, "cycle detected: 1 -> 2 -> 1", err.Error())
	})

	t.Run("io", func(t *testing.T) {
		cause := errors.New("disk full")
		err := IOError("write", "net.txt", cause)
		assert.ErrorIs(t, err, ErrIOFailure)
		assert.ErrorIs(t, err, cause)
	})
}
