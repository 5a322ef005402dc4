// Package session runs a save.Manager for one game session: it creates and
// continues slots, calls participants around saves and loads, and hands
// snapshots to the save worker.
//
// The Manager is not safe for concurrent use, so everything that touches it
// runs on the goroutine calling Run. Other goroutines talk to the host
// through Enqueue. NewGame, Continue and Save may also be called directly
// before Run starts.
package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/queue"
	"github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/cbodonnell/savestate/pkg/save"
	"github.com/cbodonnell/savestate/pkg/slot"
	"github.com/cbodonnell/savestate/pkg/workers"
)

// Migration upgrades a slot from the previous version to the version it is
// registered for.
type Migration func(s *slot.GameSlot) error

type Host struct {
	manager          *save.Manager
	repository       repositories.Repository
	codec            codec.Codec
	saveChan         chan<- workers.SaveRequest
	commandQueue     queue.Queue[Command]
	participants     []save.Participant
	migrations       map[int]Migration
	tickInterval     time.Duration
	autosaveInterval time.Duration
}

// NewHostOptions contains options for creating a new Host.
type NewHostOptions struct {
	Repository repositories.Repository
	Codec      codec.Codec
	// SaveChan hands snapshots to a workers.SaveWorker. When nil, saves are
	// persisted inline.
	SaveChan     chan<- workers.SaveRequest
	CommandQueue queue.Queue[Command]
	// CurrentVersion is the slot schema version of this build.
	CurrentVersion   int
	TickInterval     time.Duration
	AutosaveInterval time.Duration
	Now              func() time.Time
}

func NewHost(opts NewHostOptions) *Host {
	commandQueue := opts.CommandQueue
	if commandQueue == nil {
		commandQueue = queue.NewInMemoryQueue[Command](queue.QueueBufferSize)
	}
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}
	return &Host{
		manager: save.NewManager(save.NewManagerOptions{
			CurrentVersion: opts.CurrentVersion,
			Now:            opts.Now,
		}),
		repository:       opts.Repository,
		codec:            opts.Codec,
		saveChan:         opts.SaveChan,
		commandQueue:     commandQueue,
		migrations:       make(map[int]Migration),
		tickInterval:     tickInterval,
		autosaveInterval: opts.AutosaveInterval,
	}
}

// Manager returns the host's save manager. It must only be used from the
// Run goroutine.
func (h *Host) Manager() *save.Manager {
	return h.manager
}

// Register adds a participant. Participants are called in registration
// order.
func (h *Host) Register(p save.Participant) {
	h.participants = append(h.participants, p)
}

// RegisterMigration registers fn to upgrade slots from version-1 to version.
func (h *Host) RegisterMigration(version int, fn Migration) {
	h.migrations[version] = fn
}

// Enqueue hands a command to the Run goroutine. It is safe for concurrent
// use.
func (h *Host) Enqueue(cmd Command) error {
	if err := h.commandQueue.Enqueue(cmd); err != nil {
		return fmt.Errorf("failed to enqueue command: %w", err)
	}
	return nil
}

// NewGame activates an empty slot with the next free slot ID and lets every
// participant reset its state from it.
func (h *Host) NewGame(ctx context.Context) (*slot.GameSlot, error) {
	slotID, err := h.repository.NextSlotID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get next slot id: %w", err)
	}

	previous := h.manager.ActiveSlot()
	s := h.manager.ActivateNewSlot(slotID, h.manager.CurrentVersion())
	if err := h.notifyLoading(); err != nil {
		h.manager.Activate(previous)
		return nil, err
	}

	log.Info("Started new game in slot %d", slotID)
	return s, nil
}

// Continue loads a stored slot, migrates it to the current version and makes
// it active. Participants are called with OnLoading afterwards; if one fails,
// the previously active slot is restored.
func (h *Host) Continue(ctx context.Context, slotID int) (*slot.GameSlot, error) {
	record, err := h.repository.LoadSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %d: %w", slotID, err)
	}

	c := h.codec
	if c == nil || c.Format() != record.Format {
		c, err = codec.ForFormat(record.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to decode slot %d: %w", slotID, err)
		}
	}
	doc, err := c.Decode(record.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode slot %d: %w", slotID, err)
	}

	s, _ := h.manager.LoadFromPersistentForm(doc)
	if err := h.migrate(s); err != nil {
		return nil, err
	}

	previous := h.manager.ActiveSlot()
	h.manager.Activate(s)
	if err := h.notifyLoading(); err != nil {
		h.manager.Activate(previous)
		return nil, err
	}

	log.Info("Continued slot %d at version %d", s.ID(), s.Version())
	return s, nil
}

func (h *Host) migrate(s *slot.GameSlot) error {
	current := h.manager.CurrentVersion()
	if s.Version() > current {
		return fmt.Errorf("%w: slot %d is at version %d, current is %d", ErrUnsupportedVersion, s.ID(), s.Version(), current)
	}

	versions := make([]int, 0, len(h.migrations))
	for version := range h.migrations {
		if version > s.Version() && version <= current {
			versions = append(versions, version)
		}
	}
	sort.Ints(versions)

	for _, version := range versions {
		if err := h.migrations[version](s); err != nil {
			return fmt.Errorf("failed to migrate slot %d to version %d: %w", s.ID(), version, err)
		}
		s.UpdateVersion(version)
		log.Debug("Migrated slot %d to version %d", s.ID(), version)
	}
	s.UpdateVersion(current)

	return nil
}

// Save asks every participant to write its state, then persists a snapshot
// of the active slot and waits until it is stored. Saves requested while Run
// is going go through a SaveCommand instead, which does not block the loop.
func (h *Host) Save(ctx context.Context, prettyName string) (*slot.GameSlot, error) {
	done := make(chan error, 1)
	snapshot, err := h.save(ctx, prettyName, done)
	if err != nil {
		return nil, err
	}

	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
		return snapshot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// save persists a snapshot of the active slot, inline or through the save
// worker. With a nil done, a failed inline persist is returned as the error.
func (h *Host) save(ctx context.Context, prettyName string, done chan<- error) (*slot.GameSlot, error) {
	snapshot, err := h.snapshot(prettyName)
	if err != nil {
		return nil, err
	}

	if h.saveChan == nil {
		err := h.persist(ctx, snapshot)
		if err != nil {
			if done == nil {
				return nil, err
			}
			log.Error("Failed to persist slot %d: %v", snapshot.ID(), err)
		}
		reply(done, err)
		return snapshot, nil
	}

	select {
	case h.saveChan <- workers.SaveRequest{Slot: snapshot.Snapshot(), Done: done}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return snapshot, nil
}

// autosave saves the active slot, if any. When the save worker is still busy
// with an earlier request the autosave is skipped so the Run loop never
// blocks on it.
func (h *Host) autosave(ctx context.Context) error {
	if !h.manager.IsActive() {
		return nil
	}
	if h.saveChan == nil {
		_, err := h.save(ctx, "", nil)
		return err
	}

	snapshot, err := h.snapshot("")
	if err != nil {
		return err
	}
	select {
	case h.saveChan <- workers.SaveRequest{Slot: snapshot.Snapshot()}:
	default:
		log.Warn("Skipped autosave of slot %d: save worker is busy", snapshot.ID())
	}
	return nil
}

// snapshot calls OnSaving on every participant and returns a snapshot of the
// active slot ready to persist.
func (h *Host) snapshot(prettyName string) (*slot.GameSlot, error) {
	if !h.manager.IsActive() {
		return nil, fmt.Errorf("%w: no active slot", save.ErrInvalidArgument)
	}

	for _, p := range h.participants {
		if err := p.OnSaving(h.manager); err != nil {
			return nil, fmt.Errorf("participant failed to save: %w", err)
		}
	}

	return h.manager.SaveToPersistentForm(prettyName)
}

func (h *Host) persist(ctx context.Context, s *slot.GameSlot) error {
	record, err := workers.NewSlotRecord(h.codec, s)
	if err != nil {
		return err
	}
	if err := h.repository.SaveSlot(ctx, record); err != nil {
		return fmt.Errorf("failed to save slot %d: %w", s.ID(), err)
	}
	return nil
}

func (h *Host) notifyLoading() error {
	for _, p := range h.participants {
		if err := p.OnLoading(h.manager); err != nil {
			return fmt.Errorf("participant failed to load: %w", err)
		}
	}
	return nil
}

// Run applies queued commands every tick and autosaves the active slot on
// the autosave interval until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	var autosave <-chan time.Time
	if h.autosaveInterval > 0 {
		autosaveTicker := time.NewTicker(h.autosaveInterval)
		defer autosaveTicker.Stop()
		autosave = autosaveTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.processCommands(ctx)
		case <-autosave:
			if err := h.autosave(ctx); err != nil {
				log.Error("Failed to autosave: %v", err)
			}
		}
	}
}

// processCommands applies all pending commands in the queue.
func (h *Host) processCommands(ctx context.Context) {
	pendingCommands, err := h.commandQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pendingCommands {
		switch cmd := item.(type) {
		case SaveCommand:
			if _, err := h.save(ctx, cmd.PrettyName, cmd.Done); err != nil {
				log.Error("Failed to save: %v", err)
				reply(cmd.Done, err)
			}
		case ContinueCommand:
			_, err := h.Continue(ctx, cmd.SlotID)
			if err != nil {
				log.Error("Failed to continue slot %d: %v", cmd.SlotID, err)
			}
			reply(cmd.Done, err)
		case NewGameCommand:
			_, err := h.NewGame(ctx)
			if err != nil {
				log.Error("Failed to start new game: %v", err)
			}
			reply(cmd.Done, err)
		default:
			log.Warn("Unknown command type: %T", item)
		}
	}
}
