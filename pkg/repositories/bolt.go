package repositories

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbodonnell/savestate/pkg/repositories/models"
	"go.etcd.io/bbolt"
)

const slotsBucket = "slots"

// BoltRepository stores slot records as JSON values in a single bbolt bucket
// keyed by slot ID.
type BoltRepository struct {
	db *bbolt.DB
}

// NewBoltRepository opens the bbolt database at path, creating it if needed.
// The caller is responsible for calling Close() on the repository.
func NewBoltRepository(ctx context.Context, path string) (*BoltRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	r := &BoltRepository{db: db}
	if err := r.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return r, nil
}

func (r *BoltRepository) ensureBuckets() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(slotsBucket)); err != nil {
			return fmt.Errorf("failed to create slots bucket: %w", err)
		}
		return nil
	})
}

func (r *BoltRepository) Close(ctx context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *BoltRepository) SaveSlot(ctx context.Context, record *models.SlotRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotsBucket))
		if bucket == nil {
			return fmt.Errorf("slots bucket is missing")
		}
		return bucket.Put(slotKey(record.SlotID), payload)
	})
}

func (r *BoltRepository) LoadSlot(ctx context.Context, slotID int) (*models.SlotRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *models.SlotRecord
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotsBucket))
		if bucket == nil {
			return fmt.Errorf("slots bucket is missing")
		}
		payload := bucket.Get(slotKey(slotID))
		if payload == nil {
			return &ErrNotFound{SlotID: slotID}
		}
		record = &models.SlotRecord{}
		if err := json.Unmarshal(payload, record); err != nil {
			return fmt.Errorf("failed to unmarshal slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *BoltRepository) ListSlots(ctx context.Context) ([]*models.SlotRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]*models.SlotRecord, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotsBucket))
		if bucket == nil {
			return fmt.Errorf("slots bucket is missing")
		}
		return bucket.ForEach(func(_, payload []byte) error {
			record := &models.SlotRecord{}
			if err := json.Unmarshal(payload, record); err != nil {
				return fmt.Errorf("failed to unmarshal slot: %w", err)
			}
			records = append(records, record.Info())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *BoltRepository) DeleteSlot(ctx context.Context, slotID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotsBucket))
		if bucket == nil {
			return fmt.Errorf("slots bucket is missing")
		}
		key := slotKey(slotID)
		if bucket.Get(key) == nil {
			return &ErrNotFound{SlotID: slotID}
		}
		return bucket.Delete(key)
	})
}

func (r *BoltRepository) NextSlotID(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	next := 0
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotsBucket))
		if bucket == nil {
			return fmt.Errorf("slots bucket is missing")
		}
		if key, _ := bucket.Cursor().Last(); key != nil {
			next = slotIDFromKey(key) + 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}

// slotKey flips the sign bit so that bbolt's byte ordering matches numeric
// ordering of slot IDs.
func slotKey(slotID int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(int64(slotID))^(1<<63))
	return key
}

func slotIDFromKey(key []byte) int {
	return int(int64(binary.BigEndian.Uint64(key) ^ (1 << 63)))
}
