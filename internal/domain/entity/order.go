package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido. Cualquier transición entre ellos está permitida.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses enumeración cerrada de estados, en orden de ciclo de vida.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus indica si s pertenece a la enumeración.
func IsValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Order pedido de un cliente; relación N:M con Product a través de OrderItem.
type Order struct {
	ID         int64
	CustomerID string
	Status     string
	Total      decimal.Decimal
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem línea de pedido con el precio unitario al momento de la compra.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal precio * cantidad de la línea.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
