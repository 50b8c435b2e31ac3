package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

type PickupRepo struct {
	db db.DB
}

func NewPickupRepo(db db.DB) *PickupRepo {
	return &PickupRepo{db: db}
}

// CreateTx inserts a new pickup and returns its id. The UNIQUE constraint on
// pickups.order_id is the backstop against a duplicate pickup slipping past
// the in-transaction existence check.
func (r *PickupRepo) CreateTx(ctx context.Context, tx db.Tx, pickup *repository.Pickup) (int64, error) {
	var id int64
	err := tx.Get(ctx, &id, `
        INSERT INTO pickups (
            order_id, status, pickup_date, pickup_location, assigned_to,
            contact_person, pickup_notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `, pickup.OrderID, pickup.Status, pickup.PickupDate, pickup.PickupLocation,
		pickup.AssignedTo, pickup.ContactPerson, pickup.PickupNotes,
		pickup.CreatedAt, pickup.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PickupRepo) GetByID(ctx context.Context, id int64) (*repository.Pickup, error) {
	var pickup repository.Pickup
	err := r.db.Get(ctx, &pickup, "SELECT * FROM pickups WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

// GetByIDTx locks the pickup row. Transition preconditions are re-checked
// against the row read here, never against a value fetched before the
// transaction opened.
func (r *PickupRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Pickup, error) {
	var pickup repository.Pickup
	err := tx.Get(ctx, &pickup, "SELECT * FROM pickups WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *PickupRepo) GetByOrderIDTx(ctx context.Context, tx db.Tx, orderID int64) (*repository.Pickup, error) {
	var pickup repository.Pickup
	err := tx.Get(ctx, &pickup, "SELECT * FROM pickups WHERE order_id = $1", orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *PickupRepo) UpdateTx(ctx context.Context, tx db.Tx, pickup *repository.Pickup) error {
	tag, err := tx.Exec(ctx, `
        UPDATE pickups
        SET
            status = $1,
            pickup_date = $2,
            pickup_location = $3,
            assigned_to = $4,
            contact_person = $5,
            pickup_notes = $6,
            updated_at = $7
        WHERE id = $8
    `, pickup.Status, pickup.PickupDate, pickup.PickupLocation, pickup.AssignedTo,
		pickup.ContactPerson, pickup.PickupNotes, pickup.UpdatedAt, pickup.ID)
	if err != nil {
		return fmt.Errorf("failed to update pickup %d: %w", pickup.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// CountActiveByDriverTx reports how many non-terminal pickups reference the
// driver, as seen inside the transaction.
func (r *PickupRepo) CountActiveByDriverTx(ctx context.Context, tx db.Tx, driverID int64) (int, error) {
	var count int
	err := tx.Get(ctx, &count, `
        SELECT COUNT(*) FROM pickups
        WHERE assigned_to = $1 AND status NOT IN ('completed', 'cancelled')
    `, driverID)
	if err != nil {
		return 0, fmt.Errorf("failed to count active pickups for driver %d: %w", driverID, err)
	}
	return count, nil
}

func (r *PickupRepo) ListActive(ctx context.Context) ([]*repository.Pickup, error) {
	var pickups []*repository.Pickup
	err := r.db.Select(ctx, &pickups, `
        SELECT * FROM pickups
        WHERE status NOT IN ('completed', 'cancelled')
        ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list active pickups: %w", err)
	}
	return pickups, nil
}

// PickupFilter narrows List results. Zero values mean no filtering.
type PickupFilter struct {
	Status   string
	DriverID int64
}

func (r *PickupRepo) List(ctx context.Context, filter PickupFilter) ([]*repository.Pickup, error) {
	query := "SELECT * FROM pickups"
	var args []interface{}
	var where []string

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DriverID != 0 {
		args = append(args, filter.DriverID)
		where = append(where, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY pickup_date ASC, id ASC"

	var pickups []*repository.Pickup
	err := r.db.Select(ctx, &pickups, query, args...)
	return pickups, err
}
