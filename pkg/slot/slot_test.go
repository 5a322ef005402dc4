package slot

import (
	"testing"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerA = ident.MustParse("00000000-0000-0000-0000-00000000000a")
	ownerB = ident.MustParse("00000000-0000-0000-0000-00000000000b")
)

func intVariable(owner ident.ID, name string, n int) SavedVariable {
	return NewSavedVariable(owner, name, variant.Wrap(name, variant.New(n)))
}

func readInt(t *testing.T, s *GameSlot, owner ident.ID, name string) int {
	t.Helper()
	v, ok := s.Get(NewSaveKey(owner, name))
	require.True(t, ok, "missing %s/%s", owner, name)
	n, err := variant.Value[int](v.Container)
	require.NoError(t, err)
	return n
}

func TestSaveKey(t *testing.T) {
	a := NewSaveKey(ownerA, "health")

	assert.True(t, a.Equal(NewSaveKey(ownerA, "health")))
	assert.False(t, a.Equal(NewSaveKey(ownerA, "mana")), "same owner, different name must not be equal")
	assert.False(t, a.Equal(NewSaveKey(ownerB, "health")))

	assert.Equal(t, a.Hash(), NewSaveKey(ownerA, "health").Hash())
	assert.NotEqual(t, a.Hash(), NewSaveKey(ownerA, "mana").Hash())

	assert.Equal(t, -1, a.Compare(NewSaveKey(ownerB, "a")))
	assert.Equal(t, -1, a.Compare(NewSaveKey(ownerA, "mana")))
	assert.Equal(t, 0, a.Compare(NewSaveKey(ownerA, "health")))

	m := map[SaveKey]int{a: 1}
	m[NewSaveKey(ownerA, "mana")] = 2
	assert.Len(t, m, 2)
}

func TestGameSlot_AddOrReplace(t *testing.T) {
	s := New(1, 1)
	key := NewSaveKey(ownerA, "health")

	s.AddOrReplace(key, intVariable(ownerA, "health", 100))
	s.AddOrReplace(key, intVariable(ownerA, "health", 50))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 50, readInt(t, s, ownerA, "health"))

	_, ok := s.Get(NewSaveKey(ownerB, "health"))
	assert.False(t, ok)

	assert.True(t, s.Remove(key))
	assert.False(t, s.Remove(key))
	assert.False(t, s.Has(key))
}

func TestGameSlot_PrepareForSerialization(t *testing.T) {
	s := New(1, 1)
	s.AddOrReplace(NewSaveKey(ownerB, "x"), intVariable(ownerB, "x", 3))
	s.AddOrReplace(NewSaveKey(ownerA, "z"), intVariable(ownerA, "z", 2))
	s.AddOrReplace(NewSaveKey(ownerA, "a"), intVariable(ownerA, "a", 1))

	first := s.PrepareForSerialization()
	second := s.PrepareForSerialization()
	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	assert.Equal(t, NewSaveKey(ownerA, "a"), first[0].Key())
	assert.Equal(t, NewSaveKey(ownerA, "z"), first[1].Key())
	assert.Equal(t, NewSaveKey(ownerB, "x"), first[2].Key())
	assert.Equal(t, first, s.Variables())
}

func TestGameSlot_serializationRoundTrip(t *testing.T) {
	s := New(4, 2)
	s.AddOrReplace(NewSaveKey(ownerA, "health"), intVariable(ownerA, "health", 100))
	s.AddOrReplace(NewSaveKey(ownerA, "mana"), intVariable(ownerA, "mana", 30))
	s.AddOrReplace(NewSaveKey(ownerB, "health"), intVariable(ownerB, "health", 7))

	rebuilt := New(4, 2)
	duplicates := rebuilt.RebuildFromSerialization(s.PrepareForSerialization())

	assert.Empty(t, duplicates)
	assert.Equal(t, s.Keys(), rebuilt.Keys())
	for _, k := range s.Keys() {
		want, _ := s.Get(k)
		got, _ := rebuilt.Get(k)
		assert.True(t, want.Equal(got), "key %s", k)
	}
}

func TestGameSlot_RebuildFromSerialization_firstSeenWins(t *testing.T) {
	s := New(1, 1)
	s.AddOrReplace(NewSaveKey(ownerB, "stale"), intVariable(ownerB, "stale", 1))

	duplicates := s.RebuildFromSerialization([]SavedVariable{
		intVariable(ownerA, "health", 100),
		intVariable(ownerA, "mana", 5),
		intVariable(ownerA, "health", 1),
		intVariable(ownerA, "health", 2),
	})

	require.Len(t, duplicates, 2)
	assert.Equal(t, DuplicateKey{Key: NewSaveKey(ownerA, "health"), Index: 2, FirstIndex: 0}, duplicates[0])
	assert.Equal(t, DuplicateKey{Key: NewSaveKey(ownerA, "health"), Index: 3, FirstIndex: 0}, duplicates[1])

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 100, readInt(t, s, ownerA, "health"))
	assert.Equal(t, 5, readInt(t, s, ownerA, "mana"))
	assert.False(t, s.Has(NewSaveKey(ownerB, "stale")))

	// still usable
	s.AddOrReplace(NewSaveKey(ownerA, "health"), intVariable(ownerA, "health", 90))
	assert.Equal(t, 90, readInt(t, s, ownerA, "health"))
}

func TestGameSlot_Snapshot(t *testing.T) {
	s := New(3, 2)
	s.SetPrettyName("before the boss")
	s.AddOrReplace(NewSaveKey(ownerA, "A"), intVariable(ownerA, "A", 1))
	items := NewSavedVariable(ownerA, "items", variant.Wrap("items", variant.New([]string{"key"})))
	s.AddOrReplace(items.Key(), items)

	snapshot := s.Snapshot()
	assert.Equal(t, s.ID(), snapshot.ID())
	assert.Equal(t, s.Version(), snapshot.Version())
	assert.Equal(t, s.PrettyName(), snapshot.PrettyName())

	s.AddOrReplace(NewSaveKey(ownerA, "A"), intVariable(ownerA, "A", 2))
	s.AddOrReplace(NewSaveKey(ownerB, "new"), intVariable(ownerB, "new", 3))
	s.UpdateVersion(5)

	assert.Equal(t, 1, readInt(t, snapshot, ownerA, "A"))
	assert.False(t, snapshot.Has(NewSaveKey(ownerB, "new")))
	assert.Equal(t, 2, snapshot.Version())

	snapshot.AddOrReplace(NewSaveKey(ownerA, "A"), intVariable(ownerA, "A", 9))
	assert.Equal(t, 2, readInt(t, s, ownerA, "A"))
}

func TestGameSlot_Snapshot_empty(t *testing.T) {
	s := New(8, 3)

	snapshot := s.Snapshot()

	assert.Equal(t, 8, snapshot.ID())
	assert.Equal(t, 3, snapshot.Version())
	assert.Equal(t, 0, snapshot.Len())

	snapshot.AddOrReplace(NewSaveKey(ownerA, "x"), intVariable(ownerA, "x", 1))
	assert.Equal(t, 0, s.Len())
}

func TestGameSlot_UpdateVersion(t *testing.T) {
	s := New(1, 2)

	assert.False(t, s.UpdateVersion(1))
	assert.Equal(t, 2, s.Version())

	assert.False(t, s.UpdateVersion(2))
	assert.Equal(t, 2, s.Version())

	assert.True(t, s.UpdateVersion(3))
	assert.Equal(t, 3, s.Version())
}

func TestGameSlot_Owners(t *testing.T) {
	s := New(1, 1)
	s.AddOrReplace(NewSaveKey(ownerB, "x"), intVariable(ownerB, "x", 1))
	s.AddOrReplace(NewSaveKey(ownerA, "x"), intVariable(ownerA, "x", 1))
	s.AddOrReplace(NewSaveKey(ownerA, "y"), intVariable(ownerA, "y", 1))

	assert.Equal(t, []ident.ID{ownerA, ownerB}, s.Owners())
}

func TestGameSlot_Document(t *testing.T) {
	s := New(6, 1)
	s.SetPrettyName("autosave")
	s.AddOrReplace(NewSaveKey(ownerA, "x"), intVariable(ownerA, "x", 1))

	doc := s.Document()

	assert.Equal(t, 6, doc.ID)
	assert.Equal(t, "autosave", doc.PrettyName)
	assert.Equal(t, 1, doc.Version)
	require.Len(t, doc.Variables, 1)
	assert.Equal(t, "x", doc.Variables[0].Name)
}
