package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/cbodonnell/savestate/pkg/repositories/models"
)

// InMemoryRepository keeps slot records in a map. Records are copied on the
// way in and out.
type InMemoryRepository struct {
	slots map[int]*models.SlotRecord
	lock  sync.RWMutex
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		slots: make(map[int]*models.SlotRecord),
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveSlot(ctx context.Context, record *models.SlotRecord) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.slots[record.SlotID] = copyRecord(record)
	return nil
}

func (r *InMemoryRepository) LoadSlot(ctx context.Context, slotID int) (*models.SlotRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	record, ok := r.slots[slotID]
	if !ok {
		return nil, &ErrNotFound{SlotID: slotID}
	}
	return copyRecord(record), nil
}

func (r *InMemoryRepository) ListSlots(ctx context.Context) ([]*models.SlotRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records := make([]*models.SlotRecord, 0, len(r.slots))
	for _, record := range r.slots {
		records = append(records, record.Info())
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SlotID < records[j].SlotID
	})
	return records, nil
}

func (r *InMemoryRepository) DeleteSlot(ctx context.Context, slotID int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.slots[slotID]; !ok {
		return &ErrNotFound{SlotID: slotID}
	}
	delete(r.slots, slotID)
	return nil
}

func (r *InMemoryRepository) NextSlotID(ctx context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.slots) == 0 {
		return 0, nil
	}
	next := 0
	for slotID := range r.slots {
		if slotID+1 > next {
			next = slotID + 1
		}
	}
	return next, nil
}

func copyRecord(record *models.SlotRecord) *models.SlotRecord {
	c := record.Info()
	if record.Data != nil {
		c.Data = append([]byte(nil), record.Data...)
	}
	return c
}
