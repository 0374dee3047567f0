package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	v "github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/entity"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

type orderStore struct {
	*MYSQLStore
}

// Orders returns an object implementing the Orders interface.
func (ms *MYSQLStore) Orders() dependency.Orders {
	return &orderStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.OrderFull, error) {
	if ok, err := v.ValidateStruct(orderNew); !ok {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	if len(orderNew.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	total := decimal.Zero
	for _, it := range orderNew.Items {
		total = total.Add(it.UnitCost.Mul(it.Quantity))
	}

	orderUUID := uuid.New().String()
	var orderId int
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), `
			INSERT INTO customer (name, phone) VALUES (:name, :phone)
			ON DUPLICATE KEY UPDATE name = VALUES(name)`,
			map[string]any{
				"name":  orderNew.CustomerName,
				"phone": orderNew.Phone,
			})
		if err != nil {
			return fmt.Errorf("can't upsert customer: %w", err)
		}

		orderId, err = ExecNamedLastId(ctx, rep.DB(), `
			INSERT INTO customer_order
				(uuid, status, placed_at, customer_name, address, city, phone, total_amount)
			VALUES
				(:uuid, :status, :placedAt, :customerName, :address, :city, :phone, :totalAmount)`,
			map[string]any{
				"uuid":         orderUUID,
				"status":       entity.Pending,
				"placedAt":     rep.Now(),
				"customerName": orderNew.CustomerName,
				"address":      orderNew.Address,
				"city":         orderNew.City,
				"phone":        orderNew.Phone,
				"totalAmount":  total,
			})
		if err != nil {
			return fmt.Errorf("can't insert order: %w", err)
		}

		rows := make([]map[string]any, 0, len(orderNew.Items))
		for _, it := range orderNew.Items {
			rows = append(rows, map[string]any{
				"order_id":     orderId,
				"product_name": it.ProductName,
				"category":     string(it.Category),
				"unit_cost":    it.UnitCost,
				"quantity":     it.Quantity,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "order_item", rows); err != nil {
			return fmt.Errorf("can't insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ms.GetOrderById(ctx, orderId)
}

func (ms *MYSQLStore) GetOrderById(ctx context.Context, orderId int) (*entity.OrderFull, error) {
	order, err := QueryNamedOne[entity.Order](ctx, ms.db, `
		SELECT id, uuid, status, placed_at, delivered_at, customer_name,
			address, city, phone, total_amount, driver_id
		FROM customer_order
		WHERE id = :id`,
		map[string]any{"id": orderId})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}

	items, err := ms.orderItems(ctx, []int{orderId})
	if err != nil {
		return nil, err
	}
	return &entity.OrderFull{Order: order, Items: items[orderId]}, nil
}

func (ms *MYSQLStore) orderItems(ctx context.Context, orderIds []int) (map[int][]entity.OrderItem, error) {
	if len(orderIds) == 0 {
		return map[int][]entity.OrderItem{}, nil
	}
	items, err := QueryListNamed[entity.OrderItem](ctx, ms.db, `
		SELECT id, order_id, product_name, category, unit_cost, quantity
		FROM order_item
		WHERE order_id IN (:orderIds)
		ORDER BY order_id, id`,
		map[string]any{"orderIds": orderIds})
	if err != nil {
		return nil, fmt.Errorf("can't get order items: %w", err)
	}
	byOrder := make(map[int][]entity.OrderItem, len(orderIds))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, nil
}

func (ms *MYSQLStore) listOrders(ctx context.Context, where string, params map[string]any) ([]entity.OrderFull, error) {
	orders, err := QueryListNamed[entity.Order](ctx, ms.db, fmt.Sprintf(`
		SELECT id, uuid, status, placed_at, delivered_at, customer_name,
			address, city, phone, total_amount, driver_id
		FROM customer_order
		WHERE %s
		ORDER BY placed_at DESC, id DESC`, where), params)
	if err != nil {
		return nil, fmt.Errorf("can't list orders: %w", err)
	}
	if len(orders) == 0 {
		return []entity.OrderFull{}, nil
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder, err := ms.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	full := make([]entity.OrderFull, 0, len(orders))
	for _, o := range orders {
		full = append(full, entity.OrderFull{Order: o, Items: itemsByOrder[o.ID]})
	}
	return full, nil
}

func (ms *MYSQLStore) ListOrdersByStatus(ctx context.Context, status entity.OrderStatusName, exclude bool) ([]entity.OrderFull, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	op := "="
	if exclude {
		op = "!="
	}
	return ms.listOrders(ctx, fmt.Sprintf("status %s :status", op), map[string]any{"status": status})
}

func (ms *MYSQLStore) DeliveredOrdersInRange(ctx context.Context, from, to time.Time) ([]entity.OrderFull, error) {
	return ms.listOrders(ctx,
		"status = :status AND delivered_at >= :from AND delivered_at <= :to",
		map[string]any{
			"status": entity.Delivered,
			"from":   from,
			"to":     to,
		})
}

func (ms *MYSQLStore) UpdateOrderStatus(ctx context.Context, orderId int, status entity.OrderStatusName) error {
	if !entity.IsValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}

	// delivered_at exists only while the order is Delivered
	var deliveredAt any
	if status == entity.Delivered {
		deliveredAt = ms.Now()
	}

	err := ExecNamed(ctx, ms.db, `
		UPDATE customer_order
		SET status = :status, delivered_at = :deliveredAt
		WHERE id = :id`,
		map[string]any{
			"id":          orderId,
			"status":      status,
			"deliveredAt": deliveredAt,
		})
	if err != nil {
		return fmt.Errorf("can't update order status: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) AssignOrderDriver(ctx context.Context, orderId int, driverId int) error {
	err := ExecNamed(ctx, ms.db, `
		UPDATE customer_order SET driver_id = :driverId WHERE id = :id`,
		map[string]any{"id": orderId, "driverId": driverId})
	if err != nil {
		return fmt.Errorf("can't assign order driver: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteOrderById(ctx context.Context, orderId int) error {
	err := ExecNamed(ctx, ms.db, `DELETE FROM customer_order WHERE id = :id`,
		map[string]any{"id": orderId})
	if err != nil {
		return fmt.Errorf("can't delete order: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) CountOrders(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.db, `SELECT COUNT(*) FROM customer_order`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("can't count orders: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) SumOrderRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := ms.db.QueryRowxContext(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM customer_order`)
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("can't sum order revenue: %w", err)
	}
	return total, nil
}
