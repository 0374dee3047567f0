package entity

import "github.com/shopspring/decimal"

// DailySalesBucket is one point of the monthly sales series. Buckets are
// derived, never persisted: one per calendar day of the target month, days
// with no delivered orders carry zeros.
type DailySalesBucket struct {
	Month  string
	Day    int
	Sales  decimal.Decimal
	Orders int
}

// CategoryStockBucket is the in-stock product count for one tracked category.
type CategoryStockBucket struct {
	Category CategoryEnum
	Quantity int
	Fill     string
}

// CountersSnapshot is the all-or-nothing join of the four global counters.
type CountersSnapshot struct {
	Orders    int
	Products  int
	Customers int
	Revenue   decimal.Decimal
}
