package dto

import "github.com/shopspring/decimal"

// AdminStatsDTO métricas globales del dashboard de administración.
type AdminStatsDTO struct {
	TotalUsers      int             `json:"totalUsers"`
	ActiveSuppliers int             `json:"activeSuppliers"`
	TotalProducts   int             `json:"totalProducts"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	UnreadMessages  int             `json:"unreadMessages"`
}

// SupplierStatsDTO métricas del proveedor autenticado.
// TotalOrders y TotalRevenue consideran solo las líneas de sus productos.
type SupplierStatsDTO struct {
	TotalProducts    int             `json:"totalProducts"`
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	LowStockProducts int             `json:"lowStockProducts"`
}
