package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateOrderStatusRequest entrada de PUT /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID         int64               `json:"id"`
	CustomerID string              `json:"customerId"`
	Status     string              `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}
