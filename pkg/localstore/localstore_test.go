package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddhisc/hrdash/pkg/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "user-1")
	require.NoError(t, err)

	ctx := context.Background()

	// A store with no snapshot yet loads empty.
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	want := []models.Interview{
		{ID: "local-1700000000000-abcd1234", Status: models.InterviewScheduled, Date: "2026-09-10T10:00:00Z"},
		{ID: "65a000000000000000000001", Status: models.InterviewCompleted, Date: "2026-09-01T09:00:00Z"},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStorePerUserFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := NewFileStore(dir, "alice")
	require.NoError(t, err)
	b, err := NewFileStore(dir, "bob")
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, []models.Interview{{ID: "x1", Status: models.InterviewScheduled}}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "snapshots must not leak across users")

	_, err = os.Stat(filepath.Join(dir, "interviews-alice.json"))
	require.NoError(t, err)
}

func TestFileStoreRejectsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "user-1")
	require.NoError(t, err)

	// Status outside the enum fails schema validation.
	bad := `[{"id": "x1", "status": "paused"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interviews-user-1.json"), []byte(bad), 0o644))

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestFileStoreRequiresUserID(t *testing.T) {
	_, err := NewFileStore(t.TempDir(), "")
	require.Error(t, err)
}

func TestMemStoreIsolation(t *testing.T) {
	seed := models.Interview{ID: "x1", Status: models.InterviewScheduled}
	store := NewMemStore(seed)
	ctx := context.Background()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	got[0].Status = models.InterviewCancelled

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewScheduled, again[0].Status, "loads must return copies")
}
