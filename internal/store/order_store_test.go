package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderStore(t *testing.T) (*SQLOrderStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewOrderStore(db), mock, db
}

func TestOrderStoreAll(t *testing.T) {
	s, mock, db := newTestOrderStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "order_number", "product_name", "price", "quantity"}).
		AddRow(1, "ORD-1001", "Mechanical Keyboard", 89.99, 1).
		AddRow(2, "ORD-1002", "USB-C Dock", 129.50, 2)

	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY id").
		WillReturnRows(rows)

	orders, err := s.All(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1001", orders[0].OrderNumber)
	assert.Equal(t, 2, orders[1].Quantity)
}

func TestOrderStoreByIDNotFound(t *testing.T) {
	s, mock, db := newTestOrderStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.ByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
