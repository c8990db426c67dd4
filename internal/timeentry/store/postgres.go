package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shiftwise/internal/timeentry/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// PostgresStore persists time entries in PostgreSQL through database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed time entry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `id, tenant_id, user_id, start_time, end_time, duration_minutes, status, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, entry *models.TimeEntry) error {
	if entry == nil {
		return dErrors.New(dErrors.CodeInternal, "time entry is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(entry.ID), uuid.UUID(entry.TenantID), uuid.UUID(entry.UserID),
		entry.Start, nullTime(entry.End), nullInt(entry.DurationMinutes),
		string(entry.Status), entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create time entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, entry *models.TimeEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE time_entries
		SET end_time = $2, duration_minutes = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		uuid.UUID(entry.ID), nullTime(entry.End), nullInt(entry.DurationMinutes),
		string(entry.Status), entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	if affected == 0 {
		return dErrors.New(dErrors.CodeNotFound, "time entry not found")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, entryID id.EntryID) (*models.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries WHERE id = $1`,
		uuid.UUID(entryID),
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "time entry not found")
		}
		return nil, fmt.Errorf("find time entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) FindOpenByUser(ctx context.Context, tenantID id.TenantID, userID id.UserID) (*models.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE tenant_id = $1 AND user_id = $2 AND status = 'open'
		ORDER BY start_time DESC
		LIMIT 1`,
		uuid.UUID(tenantID), uuid.UUID(userID),
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no open time entry")
		}
		return nil, fmt.Errorf("find open time entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE tenant_id = $1 AND user_id = $2 AND start_time >= $3 AND start_time < $4
		ORDER BY start_time ASC`,
		uuid.UUID(tenantID), uuid.UUID(userID), from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.TimeEntry, error) {
	var (
		entry    models.TimeEntry
		entryID  uuid.UUID
		tenantID uuid.UUID
		userID   uuid.UUID
		end      sql.NullTime
		duration sql.NullInt64
		status   string
	)
	err := row.Scan(&entryID, &tenantID, &userID, &entry.Start, &end, &duration, &status, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	entry.ID = id.EntryID(entryID)
	entry.TenantID = id.TenantID(tenantID)
	entry.UserID = id.UserID(userID)
	entry.Status = models.Status(status)
	if end.Valid {
		t := end.Time
		entry.End = &t
	}
	if duration.Valid {
		d := int(duration.Int64)
		entry.DurationMinutes = &d
	}
	return &entry, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
