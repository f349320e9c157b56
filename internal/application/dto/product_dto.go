package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// SupplierID se acepta por compatibilidad con el dashboard pero se ignora: el dueño es siempre
// el proveedor autenticado.
type CreateProductRequest struct {
	SupplierID        string           `json:"supplierId,omitempty"`
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	Slug              string           `json:"slug" validate:"omitempty,max=200"`
	Description       string           `json:"description"`
	ShortDescription  string           `json:"shortDescription" validate:"max=500"`
	Price             *decimal.Decimal `json:"price" validate:"required,gte=0,money"`
	ComparePrice      *decimal.Decimal `json:"comparePrice" validate:"omitnil,gte=0,money"`
	SKU               string           `json:"sku" validate:"max=100"`
	Quantity          int              `json:"quantity" validate:"gte=0,lte=2147483647"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"omitnil,gte=0,lte=2147483647"`
	CategoryID        *int64           `json:"categoryId" validate:"omitnil,gt=0"`
	Featured          bool             `json:"featured"`
	Active            *bool            `json:"active"`
}

// UpdateProductRequest actualización parcial; los campos ausentes no se modifican.
// No incluye supplierId: el decodificador estricto lo rechaza como campo desconocido.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitnil,min=1,max=200"`
	Slug              *string          `json:"slug" validate:"omitnil,min=1,max=200"`
	Description       *string          `json:"description"`
	ShortDescription  *string          `json:"shortDescription" validate:"omitnil,max=500"`
	Price             *decimal.Decimal `json:"price" validate:"omitnil,gte=0,money"`
	ComparePrice      *decimal.Decimal `json:"comparePrice" validate:"omitnil,gte=0,money"`
	SKU               *string          `json:"sku" validate:"omitnil,max=100"`
	Quantity          *int             `json:"quantity" validate:"omitnil,gte=0,lte=2147483647"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"omitnil,gte=0,lte=2147483647"`
	CategoryID        *int64           `json:"categoryId" validate:"omitnil,gt=0"`
	Featured          *bool            `json:"featured"`
	Active            *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                int64            `json:"id"`
	SupplierID        string           `json:"supplierId"`
	Name              string           `json:"name"`
	Slug              string           `json:"slug"`
	Description       string           `json:"description"`
	ShortDescription  string           `json:"shortDescription"`
	Price             decimal.Decimal  `json:"price"`
	ComparePrice      *decimal.Decimal `json:"comparePrice"`
	SKU               string           `json:"sku"`
	Quantity          int              `json:"quantity"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	CategoryID        *int64           `json:"categoryId"`
	Featured          bool             `json:"featured"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}
