package report

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstore/admin-manager/internal/entity"
)

type fakeOrders struct {
	delivered []entity.OrderFull
	err       error

	count      int
	countErr   error
	revenue    decimal.Decimal
	revenueErr error
}

func (f *fakeOrders) DeliveredOrdersInRange(ctx context.Context, from, to time.Time) ([]entity.OrderFull, error) {
	return f.delivered, f.err
}

func (f *fakeOrders) CountOrders(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

func (f *fakeOrders) SumOrderRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.revenue, f.revenueErr
}

type fakeProducts struct {
	byCategory map[entity.CategoryEnum]int
	catErr     error
	count      int
	countErr   error
}

func (f *fakeProducts) CountProductsByCategory(ctx context.Context, category entity.CategoryEnum) (int, error) {
	return f.byCategory[category], f.catErr
}

func (f *fakeProducts) CountProducts(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

type fakeCustomers struct {
	count int
	err   error
}

func (f *fakeCustomers) CountCustomers(ctx context.Context) (int, error) {
	return f.count, f.err
}

func deliveredOrder(at time.Time, items ...entity.OrderItem) entity.OrderFull {
	return entity.OrderFull{
		Order: entity.Order{
			Status:      entity.Delivered,
			DeliveredAt: sql.NullTime{Time: at, Valid: true},
		},
		Items: items,
	}
}

func item(cost string, qty int64) entity.OrderItem {
	return entity.OrderItem{
		OrderItemInsert: entity.OrderItemInsert{
			ProductName: "item",
			Category:    entity.PC,
			UnitCost:    decimal.RequireFromString(cost),
			Quantity:    decimal.NewFromInt(qty),
		},
	}
}

func newTestService(o *fakeOrders, p *fakeProducts, c *fakeCustomers) *Service {
	if o == nil {
		o = &fakeOrders{}
	}
	if p == nil {
		p = &fakeProducts{}
	}
	if c == nil {
		c = &fakeCustomers{}
	}
	return New(o, p, c, time.UTC)
}

func TestMonthlySalesEmptyMonth(t *testing.T) {
	s := newTestService(&fakeOrders{}, nil, nil)

	series, err := s.MonthlySales(context.Background(), 2026, time.January)
	require.NoError(t, err)
	require.Len(t, series, 31)

	for i, b := range series {
		assert.Equal(t, i+1, b.Day)
		assert.Equal(t, "2026-01", b.Month)
		assert.True(t, b.Sales.IsZero())
		assert.Zero(t, b.Orders)
	}
}

func TestMonthlySalesDayCount(t *testing.T) {
	s := newTestService(&fakeOrders{}, nil, nil)
	ctx := context.Background()

	for _, tc := range []struct {
		year  int
		month time.Month
		days  int
	}{
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	} {
		series, err := s.MonthlySales(ctx, tc.year, tc.month)
		require.NoError(t, err)
		assert.Len(t, series, tc.days, "%d-%02d", tc.year, tc.month)
		for i, b := range series {
			assert.Equal(t, i+1, b.Day)
		}
	}
}

func TestMonthlySalesSameDaySummed(t *testing.T) {
	day15 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	orders := &fakeOrders{
		delivered: []entity.OrderFull{
			deliveredOrder(day15, item("1000", 1)),
			deliveredOrder(day15.Add(3*time.Hour), item("2500", 1)),
		},
	}
	s := newTestService(orders, nil, nil)

	series, err := s.MonthlySales(context.Background(), 2026, time.January)
	require.NoError(t, err)
	require.Len(t, series, 31)

	b := series[14]
	assert.Equal(t, 15, b.Day)
	assert.True(t, b.Sales.Equal(decimal.NewFromInt(3500)), "got %s", b.Sales)
	assert.Equal(t, 2, b.Orders)

	for _, other := range series {
		if other.Day == 15 {
			continue
		}
		assert.True(t, other.Sales.IsZero())
		assert.Zero(t, other.Orders)
	}
}

func TestMonthlySalesSumsLineItems(t *testing.T) {
	orders := &fakeOrders{
		delivered: []entity.OrderFull{
			deliveredOrder(time.Date(2026, 1, 3, 8, 0, 0, 0, time.UTC), item("200", 3)),
			deliveredOrder(time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC), item("99.50", 2), item("10", 1)),
		},
	}
	s := newTestService(orders, nil, nil)

	series, err := s.MonthlySales(context.Background(), 2026, time.January)
	require.NoError(t, err)

	total := decimal.Zero
	for _, b := range series {
		total = total.Add(b.Sales)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("809")), "got %s", total)
	assert.True(t, series[2].Sales.Equal(decimal.NewFromInt(600)))
}

func TestMonthlySalesSkipsMissingDeliveryTimestamp(t *testing.T) {
	orders := &fakeOrders{
		delivered: []entity.OrderFull{
			{Order: entity.Order{Status: entity.Delivered}, Items: []entity.OrderItem{item("100", 1)}},
			deliveredOrder(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), item("50", 1)),
		},
	}
	s := newTestService(orders, nil, nil)

	series, err := s.MonthlySales(context.Background(), 2026, time.January)
	require.NoError(t, err)
	assert.True(t, series[4].Sales.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, series[4].Orders)
	assert.True(t, series[0].Sales.IsZero())
}

func TestMonthlySalesLocalDayBucketing(t *testing.T) {
	riga, err := time.LoadLocation("Europe/Riga")
	require.NoError(t, err)

	// 22:30 UTC on Jan 14 is already Jan 15 in Riga
	orders := &fakeOrders{
		delivered: []entity.OrderFull{
			deliveredOrder(time.Date(2026, 1, 14, 22, 30, 0, 0, time.UTC), item("100", 1)),
		},
	}
	s := New(orders, &fakeProducts{}, &fakeCustomers{}, riga)

	series, err := s.MonthlySales(context.Background(), 2026, time.January)
	require.NoError(t, err)
	assert.True(t, series[13].Sales.IsZero())
	assert.True(t, series[14].Sales.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, series[14].Orders)
}

func TestMonthlySalesIdempotent(t *testing.T) {
	orders := &fakeOrders{
		delivered: []entity.OrderFull{
			deliveredOrder(time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC), item("42", 2)),
		},
	}
	s := newTestService(orders, nil, nil)
	ctx := context.Background()

	first, err := s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	second, err := s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMonthlySalesFetchError(t *testing.T) {
	orders := &fakeOrders{err: errors.New("connection reset")}
	s := newTestService(orders, nil, nil)

	_, err := s.MonthlySales(context.Background(), 2026, time.January)
	assert.Error(t, err)
}

func TestCategoryStockTrackedSubset(t *testing.T) {
	products := &fakeProducts{
		byCategory: map[entity.CategoryEnum]int{
			entity.PC:     5,
			entity.Laptop: 12,
		},
	}
	s := newTestService(nil, products, nil)

	buckets, err := s.CategoryStock(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, trackedCategoryCount)

	for i, b := range buckets {
		assert.Equal(t, entity.AllCategories[i], b.Category)
		assert.NotEmpty(t, b.Fill)
	}
	assert.Equal(t, 5, buckets[0].Quantity)
}

func TestCategoryStockPreservesOrder(t *testing.T) {
	products := &fakeProducts{
		byCategory: map[entity.CategoryEnum]int{entity.PC: 5},
	}
	s := newTestService(nil, products, nil)

	buckets, err := s.categoryStock(context.Background(), []entity.CategoryEnum{entity.PC, entity.Laptop})
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, entity.PC, buckets[0].Category)
	assert.Equal(t, 5, buckets[0].Quantity)
	assert.Equal(t, entity.Laptop, buckets[1].Category)
	assert.Equal(t, 0, buckets[1].Quantity)
}

func TestCategoryStockFailsWhole(t *testing.T) {
	products := &fakeProducts{catErr: errors.New("quota exceeded")}
	s := newTestService(nil, products, nil)

	buckets, err := s.CategoryStock(context.Background())
	assert.Error(t, err)
	assert.Nil(t, buckets)
}

func TestCounters(t *testing.T) {
	s := newTestService(
		&fakeOrders{count: 120, revenue: decimal.RequireFromString("45999.90")},
		&fakeProducts{count: 48},
		&fakeCustomers{count: 77},
	)

	snap, err := s.Counters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, snap.Orders)
	assert.Equal(t, 48, snap.Products)
	assert.Equal(t, 77, snap.Customers)
	assert.True(t, snap.Revenue.Equal(decimal.RequireFromString("45999.90")))
}

func TestCountersAllOrNothing(t *testing.T) {
	s := newTestService(
		&fakeOrders{count: 120, revenueErr: errors.New("sum failed")},
		&fakeProducts{count: 48},
		&fakeCustomers{count: 77},
	)

	snap, err := s.Counters(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snap)
}
