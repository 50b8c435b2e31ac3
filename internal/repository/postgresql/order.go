package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDTx locks the order row for the rest of the transaction. Pickup
// scheduling serializes on this lock so two dispatchers cannot create a
// second pickup for the same order.
func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id int64, status string) error {
	tag, err := tx.Exec(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) GetItems(ctx context.Context, orderID int64) ([]*repository.OrderItem, error) {
	var items []*repository.OrderItem
	err := r.db.Select(ctx, &items, `
        SELECT * FROM order_items
        WHERE order_id = $1
        ORDER BY id ASC
    `, orderID)
	return items, err
}
