package loader

import (
	"os"
	"path/filepath"
	"testing"

	"gasnet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"net.yaml", "yaml"},
		{"net.YML", "yaml"},
		{"dir/net.json", "json"},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFor("net.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.yaml")
	doc := `pipes:
  - {id: "3", name: trunk, length: 40, diametre: 1000, in_repair: true}
stations:
  - {id: "1", name: A, workshops: {total: 2, active: 1}, effective: 70}
  - {id: "2", name: B, workshops: {total: 2, active: 0}, effective: 70}
edges:
  - {from: "1", to: "2", diameter: 1000, pipe_id: "3"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	decoded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, decoded.Inventory.Pipes, 1)
	assert.Len(t, decoded.Inventory.Stations, 2)
	assert.Equal(t, []domain.Edge{{From: "1", To: "2", Diameter: 1000, PipeID: "3"}}, decoded.Inventory.Edges)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "absent.json"))
	assert.ErrorIs(t, err, domain.ErrIOFailure)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0644))
	_, err = LoadFile(broken)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
