package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/clutch/internal/core/model"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clutch.db")
	s, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Snapshot{
		Species: "ball_python",
		Name:    "Female 12",
		Genotype: model.Genotype{
			"pastel": model.State(model.Expressed),
			"clown":  model.PossibleHet(model.Het, 66),
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Female 12", got.Name)
	assert.Equal(t, model.Expressed, got.Genotype["pastel"].State)
	require.NotNil(t, got.Genotype["clown"].PosHet)
	assert.Equal(t, 66.0, *got.Genotype["clown"].PosHet)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_SaveUpdatesExisting(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Snapshot{Species: "corn", Name: "a"})
	require.NoError(t, err)

	saved.Name = "b"
	_, err = s.Save(ctx, saved)
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Name)
}

func TestStore_ListBySpecies(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, sp := range []string{"corn", "ball_python", "corn"} {
		_, err := s.Save(ctx, Snapshot{Species: sp, Name: sp, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	corn, err := s.List(ctx, "corn")
	require.NoError(t, err)
	require.Len(t, corn, 2)
	assert.True(t, corn[0].CreatedAt.After(corn[1].CreatedAt))

	none, err := s.List(ctx, "boa")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Delete(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Snapshot{Species: "corn"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, saved.ID))
	_, err = s.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, saved.ID), ErrNotFound)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()
	saved, err := s.Save(ctx, Snapshot{Species: "corn"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	_, err = reopened.Get(ctx, saved.ID)
	assert.NoError(t, err)
}
