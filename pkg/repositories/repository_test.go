package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/savestate/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepositories(t *testing.T) map[string]Repository {
	t.Helper()
	ctx := context.Background()

	sqliteRepo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	boltRepo, err := NewBoltRepository(ctx, filepath.Join(t.TempDir(), "slots.bolt"))
	require.NoError(t, err)

	repos := map[string]Repository{
		"sqlite": sqliteRepo,
		"bolt":   boltRepo,
		"memory": NewInMemoryRepository(),
	}
	t.Cleanup(func() {
		for _, r := range repos {
			r.Close(ctx)
		}
	})
	return repos
}

func record(slotID int, name string) *models.SlotRecord {
	return &models.SlotRecord{
		SlotID:     slotID,
		PrettyName: name,
		Version:    1,
		SavedAt:    1717245000000,
		Format:     "json",
		Data:       []byte(`{"id":` + name + `}`),
	}
}

func TestRepository_saveLoad(t *testing.T) {
	ctx := context.Background()
	for name, r := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			want := record(2, "bridge")
			require.NoError(t, r.SaveSlot(ctx, want))

			got, err := r.LoadSlot(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			replaced := record(2, "castle")
			replaced.Version = 3
			require.NoError(t, r.SaveSlot(ctx, replaced))

			got, err = r.LoadSlot(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, replaced, got)
		})
	}
}

func TestRepository_notFound(t *testing.T) {
	ctx := context.Background()
	for name, r := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := r.LoadSlot(ctx, 42)
			assert.True(t, IsNotFound(err), "got %v", err)

			err = r.DeleteSlot(ctx, 42)
			assert.True(t, IsNotFound(err), "got %v", err)
		})
	}
}

func TestRepository_listAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, r := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			next, err := r.NextSlotID(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, next)

			for _, id := range []int{4, 0, 1} {
				require.NoError(t, r.SaveSlot(ctx, record(id, "slot")))
			}

			next, err = r.NextSlotID(ctx)
			require.NoError(t, err)
			assert.Equal(t, 5, next)

			slots, err := r.ListSlots(ctx)
			require.NoError(t, err)
			require.Len(t, slots, 3)
			for i, id := range []int{0, 1, 4} {
				assert.Equal(t, id, slots[i].SlotID)
				assert.Empty(t, slots[i].Data)
			}

			require.NoError(t, r.DeleteSlot(ctx, 4))
			next, err = r.NextSlotID(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, next)
		})
	}
}

func TestInMemoryRepository_copiesRecords(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	in := record(0, "a")
	require.NoError(t, r.SaveSlot(ctx, in))
	in.Data[0] = 'x'

	got, err := r.LoadSlot(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), got.Data[0])
}

func TestSlotKey_ordering(t *testing.T) {
	ids := []int{-3, -1, 0, 1, 255, 256, 1 << 40}
	for i := 1; i < len(ids); i++ {
		assert.Less(t, string(slotKey(ids[i-1])), string(slotKey(ids[i])))
	}
	for _, id := range ids {
		assert.Equal(t, id, slotIDFromKey(slotKey(id)))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		url     string
		want    any
		wantErr bool
	}{
		{url: "memory://", want: &InMemoryRepository{}},
		{url: "sqlite://" + filepath.Join(dir, "a.db"), want: &SQLiteRepository{}},
		{url: "bolt://" + filepath.Join(dir, "a.bolt"), want: &BoltRepository{}},
		{url: "mysql://localhost/db", wantErr: true},
		{url: "savestate.db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r, err := Open(ctx, tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer r.Close(ctx)
			assert.IsType(t, tt.want, r)
		})
	}
}
