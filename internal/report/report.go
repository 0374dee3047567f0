// Package report derives the admin dashboard aggregates: the monthly sales
// series, per-category stock counts and the global counters snapshot. All
// aggregators are pure functions of their inputs and the store snapshot at
// call time; freshness is the caller's concern.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/techstore/admin-manager/internal/entity"
)

// trackedCategoryCount bounds the number of count queries issued per
// category stock report. Only the first categories of the dictionary order
// are tracked; the tail is left out of the pie chart.
const trackedCategoryCount = 16

type orderSource interface {
	DeliveredOrdersInRange(ctx context.Context, from, to time.Time) ([]entity.OrderFull, error)
	CountOrders(ctx context.Context) (int, error)
	SumOrderRevenue(ctx context.Context) (decimal.Decimal, error)
}

type productSource interface {
	CountProductsByCategory(ctx context.Context, category entity.CategoryEnum) (int, error)
	CountProducts(ctx context.Context) (int, error)
}

type customerSource interface {
	CountCustomers(ctx context.Context) (int, error)
}

type Service struct {
	orders    orderSource
	products  productSource
	customers customerSource
	loc       *time.Location
}

// New builds a report service. loc decides which calendar day a delivery
// timestamp falls on; pass the store's configured timezone, not the
// platform default.
func New(orders orderSource, products productSource, customers customerSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		loc:       loc,
	}
}
