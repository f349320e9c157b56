package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	// List devuelve todos los pedidos con sus líneas, más recientes primero.
	List(ctx context.Context) ([]*entity.Order, error)
	// ListBySupplier devuelve los pedidos que contienen al menos un producto del proveedor;
	// Items incluye solo las líneas de ese proveedor.
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Order, error)
	// UpdateStatus devuelve nil, nil si el pedido no existe.
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error)
}
