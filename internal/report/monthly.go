package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/techstore/admin-manager/internal/entity"
)

// MonthlySales produces one bucket per calendar day of the given month,
// ascending 1..N with zero-filled gaps. Sales are summed from line items,
// not from the stored order total, so the series stays consistent with the
// per-item views.
func (s *Service) MonthlySales(ctx context.Context, year int, month time.Month) ([]entity.DailySalesBucket, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	// day 0 of the next month is the last day of this one
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, s.loc)
	days := end.Day()

	orders, err := s.orders.DeliveredOrdersInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("can't fetch delivered orders for %d-%02d: %w", year, month, err)
	}

	type acc struct {
		sales  decimal.Decimal
		orders int
	}
	byDay := make(map[int]acc)
	for _, o := range orders {
		// tolerate malformed rows that slipped past the fetch filter
		if !o.Order.DeliveredAt.Valid {
			continue
		}
		day := o.Order.DeliveredAt.Time.In(s.loc).Day()
		if day < 1 || day > days {
			continue
		}
		a := byDay[day]
		a.sales = a.sales.Add(entity.ItemsTotal(o.Items))
		a.orders++
		byDay[day] = a
	}

	label := fmt.Sprintf("%d-%02d", year, int(month))
	series := make([]entity.DailySalesBucket, 0, days)
	for d := 1; d <= days; d++ {
		a := byDay[d]
		series = append(series, entity.DailySalesBucket{
			Month:  label,
			Day:    d,
			Sales:  a.sales,
			Orders: a.orders,
		})
	}
	return series, nil
}
