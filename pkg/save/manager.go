// Package save coordinates typed reads and writes against the active game
// slot and produces snapshots for persistence.
//
// A Manager is an explicitly constructed context object: hosts create one
// per session and pass it to whatever needs save access. It holds at most
// one active slot. It does no locking; all calls must come from the single
// goroutine that owns the session.
package save

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/slot"
	"github.com/cbodonnell/savestate/pkg/variant"
)

// Participant is implemented by entities that store state in the slot. The
// host calls OnSaving before a save and OnLoading after a slot is loaded;
// each participant reads or writes its own values through the manager.
type Participant interface {
	OnSaving(m *Manager) error
	OnLoading(m *Manager) error
}

type Manager struct {
	currentVersion int
	active         *slot.GameSlot
	now            func() time.Time
}

type NewManagerOptions struct {
	// CurrentVersion is the slot schema version new slots are created with.
	CurrentVersion int
	// Now stamps persisted snapshots. Defaults to time.Now.
	Now func() time.Time
}

func NewManager(opts NewManagerOptions) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	currentVersion := opts.CurrentVersion
	if currentVersion < 1 {
		currentVersion = 1
	}
	return &Manager{
		currentVersion: currentVersion,
		now:            now,
	}
}

func (m *Manager) CurrentVersion() int {
	return m.currentVersion
}

// ActiveSlot returns the active slot, or nil if none is active.
func (m *Manager) ActiveSlot() *slot.GameSlot {
	return m.active
}

func (m *Manager) IsActive() bool {
	return m.active != nil
}

// ActivateNewSlot discards the active slot, if any, and activates an empty
// one with the given id and version.
func (m *Manager) ActivateNewSlot(id int, version int) *slot.GameSlot {
	m.active = slot.New(id, version)
	log.Debug("Activated new slot %d at version %d", id, version)
	return m.active
}

// Activate makes a slot returned by LoadFromPersistentForm the active one.
// Activate(nil) leaves no slot active.
func (m *Manager) Activate(s *slot.GameSlot) {
	m.active = s
	if s == nil {
		log.Debug("Deactivated slot")
		return
	}
	log.Debug("Activated slot %d at version %d with %d values", s.ID(), s.Version(), s.Len())
}

// SaveToPersistentForm returns a snapshot of the active slot stamped with
// the current time and, if non-empty, prettyName. The flat sequence of the
// snapshot is prepared. The active slot is not modified.
func (m *Manager) SaveToPersistentForm(prettyName string) (*slot.GameSlot, error) {
	if m.active == nil {
		return nil, fmt.Errorf("%w: no active slot", ErrInvalidArgument)
	}

	snapshot := m.active.Snapshot()
	if prettyName != "" {
		snapshot.SetPrettyName(prettyName)
	}
	snapshot.SetSavedAt(m.now())
	snapshot.PrepareForSerialization()
	return snapshot, nil
}

// LoadFromPersistentForm builds a slot from a decoded document. Records
// whose key repeats an earlier record are dropped and returned as
// diagnostics; the slot is usable either way. The slot is not activated.
func (m *Manager) LoadFromPersistentForm(doc slot.Document) (*slot.GameSlot, []slot.DuplicateKey) {
	s := slot.New(doc.ID, doc.Version)
	s.SetPrettyName(doc.PrettyName)
	s.SetSavedAt(doc.SavedAt)
	duplicates := s.RebuildFromSerialization(doc.Variables)
	if len(duplicates) > 0 {
		log.Warn("Loaded slot %d with %d duplicate keys dropped", doc.ID, len(duplicates))
	}
	return s, duplicates
}

type saveOptions struct {
	overwrite bool
}

// SaveOption customizes SaveVariable.
type SaveOption func(*saveOptions)

// WithoutOverwrite makes SaveVariable fail with ErrKeyExists instead of
// replacing an existing value.
func WithoutOverwrite() SaveOption {
	return func(o *saveOptions) {
		o.overwrite = false
	}
}

// SaveVariable stores value under (owner, name) in the active slot. Names
// must be non-blank UTF-8. By default an existing value is replaced. On error
// the slot is unchanged.
func SaveVariable[T variant.Storable](m *Manager, owner ident.ID, name string, value T, opts ...SaveOption) error {
	options := saveOptions{overwrite: true}
	for _, opt := range opts {
		opt(&options)
	}

	if m.active == nil {
		return fmt.Errorf("%w: no active slot", ErrInvalidArgument)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: variable name is empty", ErrInvalidArgument)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: variable name %q is not valid UTF-8", ErrInvalidArgument, name)
	}

	key := slot.NewSaveKey(owner, name)
	if !options.overwrite && m.active.Has(key) {
		return fmt.Errorf("%w: %s", ErrKeyExists, key)
	}

	container := variant.Wrap(name, variant.New(value))
	m.active.AddOrReplace(key, slot.NewSavedVariable(owner, name, container))
	return nil
}

// LoadVariable reads the value stored under (owner, name) in the active slot
// as T. It returns the zero T with ErrNotFound or ErrTypeMismatch on failure.
func LoadVariable[T any](m *Manager, owner ident.ID, name string) (T, error) {
	var zero T
	if m.active == nil {
		return zero, fmt.Errorf("%w: no active slot", ErrNotFound)
	}

	key := slot.NewSaveKey(owner, name)
	saved, ok := m.active.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	expected := variant.KindOf[T]()
	if expected == variant.KindEmpty {
		return zero, fmt.Errorf("%w: %T cannot be stored", ErrTypeMismatch, zero)
	}
	if saved.Container.Kind() != expected {
		return zero, fmt.Errorf("%w: %s holds %s, want %s", ErrTypeMismatch, key, saved.Container.Kind(), expected)
	}

	value, err := variant.Value[T](saved.Container)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}
