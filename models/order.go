package models

import "time"

// Order groups one to three items bought by a customer on a single date.
// Orders exist only during generation; analysis always runs on the flattened
// order-item rows.
type Order struct {
	ID         int         `json:"id"`
	Date       time.Time   `json:"date"`
	CustomerID int         `json:"customer_id"`
	Items      []OrderItem `json:"items"`
}

// OrderItem is one row of the flattened order table, the unit of aggregation.
// UnitPrice, Category and ProductName are denormalized copies of the product's
// values at order time, not live references.
type OrderItem struct {
	OrderID     int       `json:"order_id"`
	OrderDate   time.Time `json:"order_date"`
	CustomerID  int       `json:"customer_id"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// Revenue is the line total for the item.
func (i OrderItem) Revenue() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
