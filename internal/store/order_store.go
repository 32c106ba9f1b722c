package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ArieGerard/OdersApp/internal/models"
)

// OrderStore is the data-access interface for order records.
type OrderStore interface {
	All(ctx context.Context) ([]models.Order, error)
	ByID(ctx context.Context, id int64) (models.Order, error)
}

// SQLOrderStore implements OrderStore against the orders table.
type SQLOrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new SQLOrderStore.
func NewOrderStore(db *sql.DB) *SQLOrderStore {
	return &SQLOrderStore{db: db}
}

var orderColumns = []string{"id", "order_number", "product_name", "price", "quantity"}

// All returns every order, ordered by id.
func (s *SQLOrderStore) All(ctx context.Context) ([]models.Order, error) {
	rows, err := sq.Select(orderColumns...).From("orders").
		OrderBy("id").
		RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.ProductName, &o.Price, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// ByID retrieves a single order by id.
func (s *SQLOrderStore) ByID(ctx context.Context, id int64) (models.Order, error) {
	row := sq.Select(orderColumns...).From("orders").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).QueryRowContext(ctx)

	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.ProductName, &o.Price, &o.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("query order by id: %w", err)
	}
	return o, nil
}
