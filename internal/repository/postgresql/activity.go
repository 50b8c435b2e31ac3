package postgresql

import (
	"context"
	"fmt"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

type ActivityLogRepo struct {
	db db.DB
}

func NewActivityLogRepo(db db.DB) *ActivityLogRepo {
	return &ActivityLogRepo{db: db}
}

// CreateTx appends a log entry inside the caller's transaction so the entry
// never exists without its corresponding state change.
func (r *ActivityLogRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.ActivityLogEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO activity_log (user_id, message, created_at)
        VALUES ($1, $2, $3)
    `, entry.UserID, entry.Message, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append activity log entry: %w", err)
	}
	return nil
}

func (r *ActivityLogRepo) ListRecent(ctx context.Context, limit int) ([]*repository.ActivityLogEntry, error) {
	var entries []*repository.ActivityLogEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM activity_log
        ORDER BY created_at DESC, id DESC
        LIMIT $1
    `, limit)
	return entries, err
}
