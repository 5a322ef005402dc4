package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the postgres
// migrations. The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	err = runMigrations(ctx, "postgres", func(ctx context.Context, query string) error {
		_, err := conn.Exec(ctx, query)
		return err
	})
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %w", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSlot(ctx context.Context, record *models.SlotRecord) error {
	q := `
	INSERT INTO slots (slot_id, pretty_name, version, saved_at, format, data) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (slot_id) DO UPDATE SET pretty_name = $2, version = $3, saved_at = $4, format = $5, data = $6;
	`
	_, err := r.conn.Exec(ctx, q, record.SlotID, record.PrettyName, record.Version, record.SavedAt, record.Format, record.Data)
	if err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}

	return nil
}

func (r *PostgresRepository) LoadSlot(ctx context.Context, slotID int) (*models.SlotRecord, error) {
	q := `
	SELECT slot_id, pretty_name, version, saved_at, format, data FROM slots WHERE slot_id = $1;
	`
	record := &models.SlotRecord{}
	err := r.conn.QueryRow(ctx, q, slotID).Scan(&record.SlotID, &record.PrettyName, &record.Version, &record.SavedAt, &record.Format, &record.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{SlotID: slotID}
		}
		return nil, fmt.Errorf("failed to scan slot: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListSlots(ctx context.Context) ([]*models.SlotRecord, error) {
	rows, err := r.conn.Query(ctx, "SELECT slot_id, pretty_name, version, saved_at, format FROM slots ORDER BY slot_id")
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

func (r *PostgresRepository) DeleteSlot(ctx context.Context, slotID int) error {
	tag, err := r.conn.Exec(ctx, "DELETE FROM slots WHERE slot_id = $1", slotID)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{SlotID: slotID}
	}

	return nil
}

func (r *PostgresRepository) NextSlotID(ctx context.Context) (int, error) {
	var next int
	if err := r.conn.QueryRow(ctx, "SELECT COALESCE(MAX(slot_id) + 1, 0) FROM slots").Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to query next slot id: %w", err)
	}

	return next, nil
}
