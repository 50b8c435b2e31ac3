package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

type DriverRepo struct {
	db db.DB
}

func NewDriverRepo(db db.DB) *DriverRepo {
	return &DriverRepo{db: db}
}

func (r *DriverRepo) GetByID(ctx context.Context, userID int64) (*repository.DriverDetails, error) {
	var driver repository.DriverDetails
	err := r.db.Get(ctx, &driver, "SELECT * FROM driver_details WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// GetByIDTx locks the driver row so concurrent assignments to the same
// driver serialize.
func (r *DriverRepo) GetByIDTx(ctx context.Context, tx db.Tx, userID int64) (*repository.DriverDetails, error) {
	var driver repository.DriverDetails
	err := tx.Get(ctx, &driver, "SELECT * FROM driver_details WHERE user_id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepo) SetAvailabilityTx(ctx context.Context, tx db.Tx, userID int64, status string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE driver_details
        SET availability_status = $1, updated_at = $2
        WHERE user_id = $3
    `, status, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to set driver %d availability: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *DriverRepo) IncrementCompletedTx(ctx context.Context, tx db.Tx, userID int64) error {
	tag, err := tx.Exec(ctx, `
        UPDATE driver_details
        SET completed_pickups = completed_pickups + 1, updated_at = $1
        WHERE user_id = $2
    `, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to increment completed pickups for driver %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *DriverRepo) ListAvailable(ctx context.Context) ([]*repository.DriverDetails, error) {
	var drivers []*repository.DriverDetails
	err := r.db.Select(ctx, &drivers, `
        SELECT * FROM driver_details
        WHERE availability_status = 'available'
        ORDER BY rating DESC, user_id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list available drivers: %w", err)
	}
	return drivers, nil
}

func (r *DriverRepo) ListAll(ctx context.Context) ([]*repository.DriverDetails, error) {
	var drivers []*repository.DriverDetails
	err := r.db.Select(ctx, &drivers, "SELECT * FROM driver_details ORDER BY user_id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}
