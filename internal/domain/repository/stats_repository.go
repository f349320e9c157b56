package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatsRepository consultas agregadas de solo lectura para los dashboards.
// En todos los métodos supplierID vacío significa "toda la plataforma".
// Los ingresos excluyen pedidos cancelados y usan COALESCE para devolver cero sin filas.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	CountProducts(ctx context.Context, supplierID string) (int, error)
	CountOrders(ctx context.Context, supplierID string) (int, error)
	SumRevenue(ctx context.Context, supplierID string) (decimal.Decimal, error)
	// CountLowStockProducts cuenta productos con quantity <= COALESCE(low_stock_threshold, defaultThreshold).
	CountLowStockProducts(ctx context.Context, supplierID string, defaultThreshold int) (int, error)
	CountMessagesByStatus(ctx context.Context, status string) (int, error)
}
