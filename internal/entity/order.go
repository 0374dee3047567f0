package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type OrderNew struct {
	CustomerName string            `valid:"required"`
	Address      string            `valid:"required"`
	City         string            `valid:"required"`
	Phone        string            `valid:"required"`
	Items        []OrderItemInsert `valid:"required"`
}

// Order represents the customer_order table.
type Order struct {
	ID           int             `db:"id"`
	UUID         string          `db:"uuid"`
	Status       OrderStatusName `db:"status"`
	PlacedAt     time.Time       `db:"placed_at"`
	DeliveredAt  sql.NullTime    `db:"delivered_at"`
	CustomerName string          `db:"customer_name"`
	Address      string          `db:"address"`
	City         string          `db:"city"`
	Phone        string          `db:"phone"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	DriverID     sql.NullInt32   `db:"driver_id"`
}

type OrderFull struct {
	Order Order
	Items []OrderItem
}

// OrderItem represents the order_item table. Items are immutable snapshots
// taken at order creation, not references to live product rows.
type OrderItem struct {
	ID      int `db:"id"`
	OrderID int `db:"order_id"`
	OrderItemInsert
}

type OrderItemInsert struct {
	ProductName string          `db:"product_name" valid:"required"`
	Category    CategoryEnum    `db:"category"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	Quantity    decimal.Decimal `db:"quantity"`
}

// ItemsTotal sums unit_cost * quantity across the order's line items.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitCost.Mul(it.Quantity))
	}
	return total
}

type OrderStatusName string

const (
	Pending    OrderStatusName = "Pending"
	Processing OrderStatusName = "Processing"
	Shipped    OrderStatusName = "Shipped"
	Delivered  OrderStatusName = "Delivered"
	Cancelled  OrderStatusName = "Cancelled"
)

var ValidOrderStatuses = map[OrderStatusName]bool{
	Pending:    true,
	Processing: true,
	Shipped:    true,
	Delivered:  true,
	Cancelled:  true,
}

func IsValidOrderStatus(s OrderStatusName) bool {
	return ValidOrderStatuses[s]
}
