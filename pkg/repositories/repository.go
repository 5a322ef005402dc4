package repositories

import (
	"context"

	"github.com/cbodonnell/savestate/pkg/repositories/models"
)

// Repository stores encoded slots by slot ID.
type Repository interface {
	Close(ctx context.Context) error
	// SaveSlot inserts the record or replaces the one with the same slot ID.
	SaveSlot(ctx context.Context, record *models.SlotRecord) error
	// LoadSlot returns *ErrNotFound if the slot does not exist.
	LoadSlot(ctx context.Context, slotID int) (*models.SlotRecord, error)
	// ListSlots returns every slot ordered by ID, without data.
	ListSlots(ctx context.Context) ([]*models.SlotRecord, error)
	// DeleteSlot returns *ErrNotFound if the slot does not exist.
	DeleteSlot(ctx context.Context, slotID int) error
	// NextSlotID returns one past the highest stored slot ID, or 0 when
	// nothing is stored.
	NextSlotID(ctx context.Context) (int, error)
}
