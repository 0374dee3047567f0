package dto

import (
	"time"

	"github.com/techstore/admin-manager/internal/entity"
)

// CheckoutOrder is the intake payload written by the storefront checkout.
// Field names follow the storefront's document schema.
type CheckoutOrder struct {
	CustomerName string             `json:"customerName"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	Phone        string             `json:"phone"`
	ProductsList []CheckoutLineItem `json:"productsList"`
}

type CheckoutLineItem struct {
	Name     string `json:"p_name"`
	Category string `json:"p_cat"`
	Cost     Number `json:"p_cost"`
	Quantity Number `json:"p_qu"`
}

// ToEntity normalizes the checkout payload into an order insert. Numeric
// coercion already happened during decoding; this is where the immutable
// line item snapshot is taken.
func (co *CheckoutOrder) ToEntity() *entity.OrderNew {
	items := make([]entity.OrderItemInsert, 0, len(co.ProductsList))
	for _, li := range co.ProductsList {
		items = append(items, entity.OrderItemInsert{
			ProductName: li.Name,
			Category:    entity.CategoryEnum(li.Category),
			UnitCost:    li.Cost.Decimal,
			Quantity:    li.Quantity.Decimal,
		})
	}
	return &entity.OrderNew{
		CustomerName: co.CustomerName,
		Address:      co.Address,
		City:         co.City,
		Phone:        co.Phone,
		Items:        items,
	}
}

type OrderResponse struct {
	ID           int                 `json:"id"`
	UUID         string              `json:"uuid"`
	Status       string              `json:"status"`
	PlacedAt     time.Time           `json:"placedAt"`
	DeliveredAt  *time.Time          `json:"deliveredAt,omitempty"`
	CustomerName string              `json:"customerName"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	Phone        string              `json:"phone"`
	TotalAmount  Number              `json:"totalAmount"`
	DriverID     *int                `json:"driverId,omitempty"`
	Items        []OrderItemResponse `json:"productsList"`
}

type OrderItemResponse struct {
	Name     string `json:"p_name"`
	Category string `json:"p_cat"`
	Cost     Number `json:"p_cost"`
	Quantity Number `json:"p_qu"`
}

func ConvertOrderFull(of *entity.OrderFull) *OrderResponse {
	if of == nil {
		return nil
	}
	resp := &OrderResponse{
		ID:           of.Order.ID,
		UUID:         of.Order.UUID,
		Status:       string(of.Order.Status),
		PlacedAt:     of.Order.PlacedAt,
		CustomerName: of.Order.CustomerName,
		Address:      of.Order.Address,
		City:         of.Order.City,
		Phone:        of.Order.Phone,
		TotalAmount:  NumberFromDecimal(of.Order.TotalAmount),
	}
	if of.Order.DeliveredAt.Valid {
		t := of.Order.DeliveredAt.Time
		resp.DeliveredAt = &t
	}
	if of.Order.DriverID.Valid {
		id := int(of.Order.DriverID.Int32)
		resp.DriverID = &id
	}
	resp.Items = make([]OrderItemResponse, 0, len(of.Items))
	for _, it := range of.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			Name:     it.ProductName,
			Category: string(it.Category),
			Cost:     NumberFromDecimal(it.UnitCost),
			Quantity: NumberFromDecimal(it.Quantity),
		})
	}
	return resp
}

func ConvertOrders(orders []entity.OrderFull) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *ConvertOrderFull(&orders[i]))
	}
	return resp
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AssignDriverRequest struct {
	DriverID int `json:"driverId"`
}
