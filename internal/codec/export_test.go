package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"gasnet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLExport(t *testing.T) {
	inv := sampleInventory()
	inv.Edges = []domain.Edge{{From: "1", To: "1", Diameter: 500, PipeID: "10"}}

	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(inv, &buf))

	var got yamlInventory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Pipes, 2)
	assert.True(t, got.Pipes[1].InRepair)
	require.Len(t, got.Stations, 1)
	assert.Equal(t, 6, got.Stations[0].Workshops.Total)
	assert.Equal(t, 4, got.Stations[0].Workshops.Active)
	require.Len(t, got.Edges, 1)
	assert.Equal(t, "10", got.Edges[0].PipeID)
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleInventory(), &buf))

	var got domain.Inventory
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleInventory().Pipes, got.Pipes)
	assert.Nil(t, got.Edges)
}

func TestExporters(t *testing.T) {
	exporters := Exporters()
	assert.Contains(t, exporters, "yaml")
	assert.Contains(t, exporters, "json")
	assert.NotContains(t, exporters, "text")
}
