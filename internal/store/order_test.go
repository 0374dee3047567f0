package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/admin-manager/internal/entity"
)

func testOrderNew(phone string) *entity.OrderNew {
	return &entity.OrderNew{
		CustomerName: "Janis Berzins",
		Address:      "Brivibas 1",
		City:         "Riga",
		Phone:        phone,
		Items: []entity.OrderItemInsert{
			{
				ProductName: "Thinkpad",
				Category:    entity.Laptop,
				UnitCost:    decimal.RequireFromString("1200"),
				Quantity:    decimal.NewFromInt(2),
			},
			{
				ProductName: "USB hub",
				Category:    entity.Accessories,
				UnitCost:    decimal.RequireFromString("19.90"),
				Quantity:    decimal.NewFromInt(1),
			},
		},
	}
}

func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	of, err := db.CreateOrder(ctx, testOrderNew("+371 2000001"))
	require.NoError(t, err)
	require.NotNil(t, of)
	assert.Equal(t, entity.Pending, of.Order.Status)
	assert.NotEmpty(t, of.Order.UUID)
	assert.False(t, of.Order.DeliveredAt.Valid)
	require.Len(t, of.Items, 2)
	assert.True(t, of.Order.TotalAmount.Equal(decimal.RequireFromString("2419.90")),
		"got total %s", of.Order.TotalAmount)

	got, err := db.GetOrderById(ctx, of.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, of.Order.UUID, got.Order.UUID)

	require.NoError(t, db.UpdateOrderStatus(ctx, of.Order.ID, entity.Delivered))
	got, err = db.GetOrderById(ctx, of.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Delivered, got.Order.Status)
	assert.True(t, got.Order.DeliveredAt.Valid)

	// moving out of Delivered clears the delivery timestamp
	require.NoError(t, db.UpdateOrderStatus(ctx, of.Order.ID, entity.Processing))
	got, err = db.GetOrderById(ctx, of.Order.ID)
	require.NoError(t, err)
	assert.False(t, got.Order.DeliveredAt.Valid)

	require.NoError(t, db.DeleteOrderById(ctx, of.Order.ID))
	_, err = db.GetOrderById(ctx, of.Order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	on := testOrderNew("+371 2000002")
	on.CustomerName = ""
	_, err := db.CreateOrder(ctx, on)
	require.Error(t, err)

	on = testOrderNew("+371 2000003")
	on.Items = nil
	_, err = db.CreateOrder(ctx, on)
	require.Error(t, err)
}

func TestListOrdersByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := db.CreateOrder(ctx, testOrderNew("+371 2000004"))
	require.NoError(t, err)
	second, err := db.CreateOrder(ctx, testOrderNew("+371 2000005"))
	require.NoError(t, err)
	require.NoError(t, db.UpdateOrderStatus(ctx, second.Order.ID, entity.Cancelled))

	pending, err := db.ListOrdersByStatus(ctx, entity.Pending, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.Order.ID, pending[0].Order.ID)
	assert.Len(t, pending[0].Items, 2)

	active, err := db.ListOrdersByStatus(ctx, entity.Cancelled, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.Order.ID, active[0].Order.ID)

	_, err = db.ListOrdersByStatus(ctx, "Lost", false)
	require.Error(t, err)
}

func TestDeliveredOrdersInRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	delivered, err := db.CreateOrder(ctx, testOrderNew("+371 2000006"))
	require.NoError(t, err)
	require.NoError(t, db.UpdateOrderStatus(ctx, delivered.Order.ID, entity.Delivered))

	// still pending, must not show up in the delivered series
	_, err = db.CreateOrder(ctx, testOrderNew("+371 2000007"))
	require.NoError(t, err)

	now := time.Now()
	got, err := db.DeliveredOrdersInRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, delivered.Order.ID, got[0].Order.ID)
	assert.Len(t, got[0].Items, 2)

	got, err = db.DeliveredOrdersInRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountersQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateOrder(ctx, testOrderNew("+371 2000008"))
	require.NoError(t, err)
	// same phone upserts into the same customer row
	_, err = db.CreateOrder(ctx, testOrderNew("+371 2000008"))
	require.NoError(t, err)
	_, err = db.CreateOrder(ctx, testOrderNew("+371 2000009"))
	require.NoError(t, err)

	orders, err := db.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, orders)

	customers, err := db.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, customers)

	revenue, err := db.SumOrderRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("7259.70")),
		"got revenue %s", revenue)
}

func TestAssignOrderDriver(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	driverId, err := db.AddDriver(ctx, &entity.DriverNew{
		Name:  "Janis",
		Email: "janis@example.com",
		Phone: "+371 2000010",
	})
	require.NoError(t, err)

	of, err := db.CreateOrder(ctx, testOrderNew("+371 2000011"))
	require.NoError(t, err)

	require.NoError(t, db.AssignOrderDriver(ctx, of.Order.ID, driverId))
	got, err := db.GetOrderById(ctx, of.Order.ID)
	require.NoError(t, err)
	require.True(t, got.Order.DriverID.Valid)
	assert.Equal(t, driverId, int(got.Order.DriverID.Int32))

	df, err := db.GetDriverById(ctx, driverId)
	require.NoError(t, err)
	assert.Equal(t, []int{of.Order.ID}, df.AssignedOrderIDs)
}
