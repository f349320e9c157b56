package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de stock bajo cuando ni el producto ni la configuración definen otro.
const DefaultLowStockThreshold = 5

// Product artículo publicado por un proveedor. SupplierID es inmutable una vez creado.
type Product struct {
	ID                int64
	SupplierID        string
	Name              string
	Slug              string
	Description       string
	ShortDescription  string
	Price             decimal.Decimal
	ComparePrice      *decimal.Decimal
	SKU               string
	Quantity          int
	LowStockThreshold *int
	CategoryID        *int64
	Featured          bool
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProductPatch campos opcionales de una actualización parcial; nil = no tocar.
// SupplierID no forma parte del patch: la propiedad no se transfiere.
type ProductPatch struct {
	Name              *string
	Slug              *string
	Description       *string
	ShortDescription  *string
	Price             *decimal.Decimal
	ComparePrice      *decimal.Decimal
	SKU               *string
	Quantity          *int
	LowStockThreshold *int
	CategoryID        *int64
	Featured          *bool
	Active            *bool
}

// ProductFilter filtros de listado; SupplierID vacío = todos los productos.
type ProductFilter struct {
	SupplierID string
}
