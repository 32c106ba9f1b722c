package models

// Order is a purchase record shown to authenticated users.
type Order struct {
	ID          int64
	OrderNumber string
	ProductName string
	Price       float64
	Quantity    int
}
