package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/shenikar/dispatch_console/internal/service"
)

// dbtx - часть pgxpool.Pool, которой пользуется журнал
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ActionJournal struct {
	db dbtx
}

func NewActionJournal(db dbtx) service.ActionJournal {
	return &ActionJournal{db: db}
}

// Record сохраняет действие оператора в журнал
func (r *ActionJournal) Record(ctx context.Context, record *models.ActionRecord) error {
	query := `
		INSERT INTO console_actions (action, incident_id, worker_type, status, disaster_type, latitude, longitude)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		record.Action,
		record.IncidentID,
		record.WorkerType,
		record.Status,
		record.DisasterType,
		record.Latitude,
		record.Longitude,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// ListRecent возвращает последние действия, новые первыми
func (r *ActionJournal) ListRecent(ctx context.Context, limit int) ([]*models.ActionRecord, error) {
	query := `
		SELECT
			id,
			action,
			COALESCE(incident_id, ''),
			COALESCE(worker_type, ''),
			COALESCE(status, ''),
			COALESCE(disaster_type, ''),
			latitude,
			longitude,
			created_at
		FROM console_actions
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	records := make([]*models.ActionRecord, 0, limit)
	for rows.Next() {
		record := &models.ActionRecord{}
		err := rows.Scan(
			&record.ID,
			&record.Action,
			&record.IncidentID,
			&record.WorkerType,
			&record.Status,
			&record.DisasterType,
			&record.Latitude,
			&record.Longitude,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action rows: %w", err)
	}
	return records, nil
}
