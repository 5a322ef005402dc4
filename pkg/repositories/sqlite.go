package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cbodonnell/savestate/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the sqlite
// migrations. The caller is responsible for calling Close() on the repository.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = runMigrations(ctx, "sqlite", func(ctx context.Context, query string) error {
		_, err := db.ExecContext(ctx, query)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSlot(ctx context.Context, record *models.SlotRecord) error {
	q := `
	INSERT OR REPLACE INTO slots (slot_id, pretty_name, version, saved_at, format, data)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, record.SlotID, record.PrettyName, record.Version, record.SavedAt, record.Format, record.Data)
	if err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadSlot(ctx context.Context, slotID int) (*models.SlotRecord, error) {
	q := `
	SELECT slot_id, pretty_name, version, saved_at, format, data FROM slots WHERE slot_id = ?;
	`
	record := &models.SlotRecord{}
	err := r.db.QueryRowContext(ctx, q, slotID).Scan(&record.SlotID, &record.PrettyName, &record.Version, &record.SavedAt, &record.Format, &record.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErrNotFound{SlotID: slotID}
		}
		return nil, fmt.Errorf("failed to scan slot: %w", err)
	}

	return record, nil
}

func (r *SQLiteRepository) ListSlots(ctx context.Context) ([]*models.SlotRecord, error) {
	q := `
	SELECT slot_id, pretty_name, version, saved_at, format FROM slots ORDER BY slot_id;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	records := make([]*models.SlotRecord, 0)
	for rows.Next() {
		record := &models.SlotRecord{}
		if err := rows.Scan(&record.SlotID, &record.PrettyName, &record.Version, &record.SavedAt, &record.Format); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots: %w", err)
	}

	return records, nil
}

func (r *SQLiteRepository) DeleteSlot(ctx context.Context, slotID int) error {
	q := `
	DELETE FROM slots WHERE slot_id = ?;
	`
	result, err := r.db.ExecContext(ctx, q, slotID)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &ErrNotFound{SlotID: slotID}
	}

	return nil
}

func (r *SQLiteRepository) NextSlotID(ctx context.Context) (int, error) {
	q := `
	SELECT COALESCE(MAX(slot_id) + 1, 0) FROM slots;
	`
	var next int
	if err := r.db.QueryRowContext(ctx, q).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to query next slot id: %w", err)
	}

	return next, nil
}
