package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// UpdateOwned y DeleteOwned aplican la verificación de propiedad en la misma sentencia
// (WHERE id = ? AND supplier_id = ?): devuelven nil / false cuando el producto no existe
// o pertenece a otro proveedor, sin distinguir ambos casos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	UpdateOwned(ctx context.Context, id int64, supplierID string, patch entity.ProductPatch) (*entity.Product, error)
	DeleteOwned(ctx context.Context, id int64, supplierID string) (bool, error)
}
