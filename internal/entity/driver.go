package entity

import "time"

type DriverNew struct {
	Name    string           `valid:"required"`
	Email   string           `valid:"required,email"`
	Phone   string           `valid:"required"`
	Vehicle string           `valid:"-"`
	Status  DriverStatusName `valid:"-"`
}

// Driver represents the driver table.
type Driver struct {
	ID        int              `db:"id"`
	Name      string           `db:"name"`
	Email     string           `db:"email"`
	Phone     string           `db:"phone"`
	Vehicle   string           `db:"vehicle"`
	Status    DriverStatusName `db:"status"`
	UpdatedAt time.Time        `db:"updated_at"`
}

type DriverFull struct {
	Driver Driver
	// AssignedOrderIDs lists orders currently routed to the driver,
	// derived from customer_order.driver_id.
	AssignedOrderIDs []int
}

type DriverStatusName string

const (
	DriverActive   DriverStatusName = "Active"
	DriverInactive DriverStatusName = "Inactive"
)

func IsValidDriverStatus(s DriverStatusName) bool {
	return s == DriverActive || s == DriverInactive
}
