package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/deptsched/scheduler-api/internal/models"
)

// ArchiveRepository persists schedule document snapshots in Postgres.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository constructs the repository.
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create stores a snapshot row with its document payload.
func (r *ArchiveRepository) Create(ctx context.Context, entry *models.ArchiveEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedule_archives
	(id, label, description, revision, item_count, payload, created_by, created_at, deleted_at)
	VALUES (:id, :label, :description, :revision, :item_count, :payload, :created_by, :created_at, :deleted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	return nil
}

// GetByID retrieves one live snapshot including the payload. Soft-deleted
// rows are not returned, so they cannot be restored.
func (r *ArchiveRepository) GetByID(ctx context.Context, id string) (*models.ArchiveEntry, error) {
	const query = `SELECT id, label, description, revision, item_count, payload, created_by, created_at, deleted_at
	FROM schedule_archives WHERE id = $1 AND deleted_at IS NULL`
	var entry models.ArchiveEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns snapshot metadata newest first, excluding deleted rows by
// default. Payloads are left out of listings.
func (r *ArchiveRepository) List(ctx context.Context, filter models.ArchiveFilter) ([]models.ArchiveEntry, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT id, label, description, revision, item_count, created_by, created_at, deleted_at
	FROM schedule_archives`)
	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 2)

	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if filter.Label != "" {
		args = append(args, filter.Label)
		conditions = append(conditions, fmt.Sprintf("label = $%d", len(args)))
	}

	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var records []models.ArchiveEntry
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list archive entries: %w", err)
	}
	return records, nil
}

// SoftDelete marks a snapshot as deleted without dropping its payload.
func (r *ArchiveRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	const query = `UPDATE schedule_archives SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete archive entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check archive delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
