package textfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gasnet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, slog.New(slog.NewTextHandler(io.Discard, nil))), dir
}

func testInventory() *domain.Inventory {
	inv := domain.NewInventory()
	inv.AddPipe(domain.Pipe{ID: "1", Name: "A", Length: 100, Diametre: 700})
	inv.AddPipe(domain.Pipe{ID: "3", Name: "B", Length: 50, Diametre: 1000, RepairStatus: true})
	inv.AddStation(domain.CompressorStation{ID: "1", Name: "S1", Workshop: 4, WorkshopActive: 2, Effective: 60})
	return inv
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "network", testInventory()))
	assert.FileExists(t, filepath.Join(dir, "network.txt"))

	decoded, err := repo.Load(ctx, "network")
	require.NoError(t, err)
	assert.Empty(t, decoded.Malformed)
	assert.Equal(t, testInventory().Pipes, decoded.Inventory.Pipes)
	assert.Equal(t, testInventory().Stations, decoded.Inventory.Stations)
}

func TestSaveReplacesExistingFile(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "net", testInventory()))
	require.NoError(t, repo.Save(ctx, "net", domain.NewInventory()))

	data, err := os.ReadFile(filepath.Join(dir, "net.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("-", 69)+"\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestLoadMissingFile(t *testing.T) {
	repo, _ := newTestRepo(t)

	decoded, err := repo.Load(context.Background(), "absent")
	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	repo := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := repo.Save(context.Background(), "net", testInventory())
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.NoFileExists(t, filepath.Join(dir, "net.txt"))
}

func TestInvalidNames(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"", "  ", "../escape", `a\b`, ".."} {
		assert.ErrorIs(t, repo.Save(ctx, name, testInventory()), domain.ErrInvalidInput, name)
		_, err := repo.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestLoadReportsMalformedLines(t *testing.T) {
	repo, dir := newTestRepo(t)
	content := "1,ok,10,700,0\n2,broken,abc,700,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mixed.txt"), []byte(content), 0o644))

	decoded, err := repo.Load(context.Background(), "mixed")
	require.NoError(t, err)
	assert.Len(t, decoded.Inventory.Pipes, 1)
	assert.Len(t, decoded.Malformed, 1)
}

func TestList(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "old", testInventory()))
	require.NoError(t, repo.Save(ctx, "new", testInventory()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), nil, 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.txt"), past, past))

	snapshots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "new", snapshots[0].Name)
	assert.Equal(t, "old", snapshots[1].Name)
	assert.Equal(t, filepath.Join(dir, "old.txt"), snapshots[1].Location)
}

func TestTarget(t *testing.T) {
	repo := New("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "net.txt", repo.Target("net"))
}
