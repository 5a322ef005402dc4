// Package slot implements the save-state aggregate of one game session.
//
// A GameSlot keeps its values in two shapes: a map keyed by SaveKey for
// lookups while the game runs, and a flat ordered sequence handed to
// serializers. The sequence only changes through PrepareForSerialization
// (map to sequence) and RebuildFromSerialization (sequence to map).
package slot

import (
	"slices"
	"time"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/log"
)

type GameSlot struct {
	id         int
	prettyName string
	savedAt    time.Time
	version    int
	entries    map[SaveKey]SavedVariable
	// variables is the serialization boundary; it is not kept in sync with
	// entries between rebuilds.
	variables []SavedVariable
}

// DuplicateKey reports a record dropped during RebuildFromSerialization
// because an earlier record in the sequence had the same key.
type DuplicateKey struct {
	Key        SaveKey
	Index      int
	FirstIndex int
}

func New(id int, version int) *GameSlot {
	return &GameSlot{
		id:      id,
		version: version,
		entries: make(map[SaveKey]SavedVariable),
	}
}

func (s *GameSlot) ID() int {
	return s.id
}

func (s *GameSlot) PrettyName() string {
	return s.prettyName
}

func (s *GameSlot) SetPrettyName(name string) {
	s.prettyName = name
}

func (s *GameSlot) SavedAt() time.Time {
	return s.savedAt
}

func (s *GameSlot) SetSavedAt(t time.Time) {
	s.savedAt = t
}

func (s *GameSlot) Version() int {
	return s.version
}

// UpdateVersion raises the slot version. Versions only move forward: it
// returns false and leaves the slot untouched unless version is greater than
// the current one. Callers run their migrations when it returns true.
func (s *GameSlot) UpdateVersion(version int) bool {
	if version <= s.version {
		return false
	}
	s.version = version
	return true
}

// AddOrReplace stores v under key, replacing any previous value.
func (s *GameSlot) AddOrReplace(key SaveKey, v SavedVariable) {
	s.entries[key] = v
}

func (s *GameSlot) Get(key SaveKey) (SavedVariable, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *GameSlot) Has(key SaveKey) bool {
	_, ok := s.entries[key]
	return ok
}

// Remove deletes the value stored under key and reports whether it existed.
func (s *GameSlot) Remove(key SaveKey) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *GameSlot) Len() int {
	return len(s.entries)
}

// Keys returns every key in the slot, ordered by SaveKey.Compare.
func (s *GameSlot) Keys() []SaveKey {
	keys := make([]SaveKey, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, SaveKey.Compare)
	return keys
}

// Owners returns the distinct owners with at least one value, in ID order.
func (s *GameSlot) Owners() []ident.ID {
	seen := make(map[ident.ID]struct{})
	owners := make([]ident.ID, 0)
	for k := range s.entries {
		if _, ok := seen[k.owner]; ok {
			continue
		}
		seen[k.owner] = struct{}{}
		owners = append(owners, k.owner)
	}
	slices.SortFunc(owners, ident.ID.Compare)
	return owners
}

// PrepareForSerialization projects the map into the flat sequence, ordered
// by key, and returns it.
func (s *GameSlot) PrepareForSerialization() []SavedVariable {
	variables := make([]SavedVariable, 0, len(s.entries))
	for _, k := range s.Keys() {
		variables = append(variables, s.entries[k])
	}
	s.variables = variables
	return variables
}

// Variables returns the sequence set by the last PrepareForSerialization or
// RebuildFromSerialization.
func (s *GameSlot) Variables() []SavedVariable {
	return s.variables
}

// RebuildFromSerialization replaces the map with the records of variables.
// The first record seen for a key wins; later records with the same key are
// dropped and reported, and the rebuild carries on.
func (s *GameSlot) RebuildFromSerialization(variables []SavedVariable) []DuplicateKey {
	var duplicates []DuplicateKey
	entries := make(map[SaveKey]SavedVariable, len(variables))
	firstIndex := make(map[SaveKey]int, len(variables))
	for i, v := range variables {
		key := v.Key()
		if first, ok := firstIndex[key]; ok {
			log.Warn("Duplicate key %s in slot %d at index %d (first at %d), keeping first", key, s.id, i, first)
			duplicates = append(duplicates, DuplicateKey{Key: key, Index: i, FirstIndex: first})
			continue
		}
		firstIndex[key] = i
		entries[key] = v
	}
	s.entries = entries
	s.variables = variables
	return duplicates
}

// Snapshot returns a copy of the slot whose containers are deep clones of
// the original's. Later changes to either slot are not visible in the other.
func (s *GameSlot) Snapshot() *GameSlot {
	snapshot := &GameSlot{
		id:         s.id,
		prettyName: s.prettyName,
		savedAt:    s.savedAt,
		version:    s.version,
		entries:    make(map[SaveKey]SavedVariable, len(s.entries)),
	}
	for k, v := range s.entries {
		snapshot.entries[k] = v.Clone()
	}
	return snapshot
}
