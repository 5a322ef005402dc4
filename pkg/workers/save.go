package workers

import (
	"context"
	"fmt"

	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/cbodonnell/savestate/pkg/repositories/models"
	"github.com/cbodonnell/savestate/pkg/slot"
)

type SaveWorker struct {
	repository repositories.Repository
	codec      codec.Codec
	saveChan   <-chan SaveRequest
	logger     *log.Logger
}

type NewSaveWorkerOptions struct {
	Repository repositories.Repository
	Codec      codec.Codec
	SaveChan   <-chan SaveRequest
	// Logger defaults to the default logger named "save-worker".
	Logger *log.Logger
}

// SaveRequest carries a slot snapshot to persist. The worker owns Slot once
// the request is sent. When Done is set it receives the outcome.
type SaveRequest struct {
	Slot *slot.GameSlot
	Done chan<- error
}

// NewSaveWorker creates a new SaveWorker.
// The worker encodes slot snapshots sent by the session host and
// stores them in the repository off the game loop.
func NewSaveWorker(opts NewSaveWorkerOptions) *SaveWorker {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().Named("save-worker")
	}
	return &SaveWorker{
		repository: opts.Repository,
		codec:      opts.Codec,
		saveChan:   opts.SaveChan,
		logger:     logger,
	}
}

func (w *SaveWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveChan:
			err := w.saveSlot(ctx, saveRequest.Slot)
			if err != nil {
				w.logger.Error("Failed to save slot %d: %v", saveRequest.Slot.ID(), err)
			}
			if saveRequest.Done != nil {
				saveRequest.Done <- err
			}
		}
	}
}

func (w *SaveWorker) saveSlot(ctx context.Context, s *slot.GameSlot) error {
	record, err := NewSlotRecord(w.codec, s)
	if err != nil {
		return err
	}
	if err := w.repository.SaveSlot(ctx, record); err != nil {
		return err
	}
	w.logger.Debug("Saved slot %d (%d variables, %s)", record.SlotID, s.Len(), record.Format)
	return nil
}

// NewSlotRecord encodes a slot with c into a repository record.
func NewSlotRecord(c codec.Codec, s *slot.GameSlot) (*models.SlotRecord, error) {
	data, err := c.Encode(s.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode slot %d: %w", s.ID(), err)
	}

	var savedAt int64
	if !s.SavedAt().IsZero() {
		savedAt = s.SavedAt().UnixMilli()
	}

	return &models.SlotRecord{
		SlotID:     s.ID(),
		PrettyName: s.PrettyName(),
		Version:    s.Version(),
		SavedAt:    savedAt,
		Format:     c.Format(),
		Data:       data,
	}, nil
}
