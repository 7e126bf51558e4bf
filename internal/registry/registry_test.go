package registry

import (
	"strconv"
	"testing"

	"gasnet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeSpec(d int) domain.PipeSpec {
	return domain.PipeSpec{Name: "p" + strconv.Itoa(d), Length: 10, Diametre: d}
}

func TestPipeRegistryCreate(t *testing.T) {
	r := NewPipeRegistry()

	p1, err := r.Create(pipeSpec(700))
	require.NoError(t, err)
	p2, err := r.Create(pipeSpec(500))
	require.NoError(t, err)

	assert.Equal(t, "1", p1.ID)
	assert.Equal(t, "2", p2.ID)
	assert.Equal(t, 2, r.Len())

	t.Run("invalid spec is not stored", func(t *testing.T) {
		_, err := r.Create(domain.PipeSpec{Name: "x", Length: 0, Diametre: 700})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 2, r.Len())
		assert.Equal(t, "3", r.NextID())
	})
}

func TestRegistryIDsAreNotRecycled(t *testing.T) {
	r := NewStationRegistry()
	spec := domain.StationSpec{Name: "cs", Workshop: 3, WorkshopActive: 1, Effective: 5}

	for i := 0; i < 3; i++ {
		_, err := r.Create(spec)
		require.NoError(t, err)
	}
	require.NoError(t, r.Delete("3"))
	require.NoError(t, r.Delete("1"))

	s, err := r.Create(spec)
	require.NoError(t, err)
	assert.Equal(t, "4", s.ID)
	assert.Equal(t, []string{"2", "4"}, r.IDs())
}

func TestRegistryListNumericOrder(t *testing.T) {
	r := NewPipeRegistry()
	for i := 0; i < 12; i++ {
		_, err := r.Create(pipeSpec(500))
		require.NoError(t, err)
	}

	var ids []string
	for _, p := range r.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}, ids)
}

func TestRegistryNotFound(t *testing.T) {
	r := NewPipeRegistry()

	_, err := r.Get("9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete("9"), domain.ErrNotFound)
	_, err = r.SetRepair("9", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Replace(domain.Pipe{ID: "9"}), domain.ErrNotFound)
}

func TestRegistryPutDoesNotAllocate(t *testing.T) {
	r := NewPipeRegistry()
	r.Put(domain.Pipe{ID: "5", Name: "loaded", Length: 1, Diametre: 700})

	assert.Equal(t, "6", r.NextID())
	require.NoError(t, r.Delete("5"))
	// 5 was never allocated, so it becomes the next candidate again
	assert.Equal(t, "1", r.NextID())
}

func TestFindAvailable(t *testing.T) {
	r := NewPipeRegistry()
	_, _ = r.Create(pipeSpec(700))
	_, _ = r.Create(pipeSpec(1000))
	_, _ = r.Create(pipeSpec(700))

	p, ok := r.FindAvailable(700)
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)

	_, err := r.SetRepair("1", true)
	require.NoError(t, err)
	p, ok = r.FindAvailable(700)
	require.True(t, ok)
	assert.Equal(t, "3", p.ID)
	assert.Equal(t, 1, r.UnderRepair())

	_, ok = r.FindAvailable(1400)
	assert.False(t, ok)
}

func TestStationSetActive(t *testing.T) {
	r := NewStationRegistry()
	s, err := r.Create(domain.StationSpec{Name: "north", Workshop: 5, WorkshopActive: 2, Effective: 70})
	require.NoError(t, err)

	updated, err := r.SetActive(s.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.WorkshopActive)

	_, err = r.SetActive(s.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	stored, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.WorkshopActive, "rejected edit must not apply")

	_, err = r.Create(domain.StationSpec{Name: "bad", Workshop: 1, WorkshopActive: 2, Effective: 1})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, 1, r.Len())
}
