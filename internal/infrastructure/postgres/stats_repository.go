package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura para los dashboards.
// supplierID vacío = toda la plataforma.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountUsers total de usuarios registrados.
func (r *StatsRepo) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "count users", `SELECT COUNT(*) FROM users`)
}

// CountUsersByRole usuarios con el rol indicado.
func (r *StatsRepo) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return r.count(ctx, "count users by role", `SELECT COUNT(*) FROM users WHERE role = $1`, role)
}

// CountProducts productos de la plataforma o del proveedor.
func (r *StatsRepo) CountProducts(ctx context.Context, supplierID string) (int, error) {
	return r.count(ctx, "count products",
		`SELECT COUNT(*) FROM products WHERE ($1::text = '' OR supplier_id = $1::text)`, supplierID)
}

// CountOrders pedidos totales, o pedidos que incluyen productos del proveedor.
func (r *StatsRepo) CountOrders(ctx context.Context, supplierID string) (int, error) {
	if supplierID == "" {
		return r.count(ctx, "count orders", `SELECT COUNT(*) FROM orders`)
	}
	return r.count(ctx, "count supplier orders", `
		SELECT COUNT(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE p.supplier_id = $1`, supplierID)
}

// SumRevenue ingresos de pedidos no cancelados. Para un proveedor suma solo sus líneas (precio * cantidad).
func (r *StatsRepo) SumRevenue(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> $1`
	args := []any{entity.OrderStatusCancelled}
	if supplierID != "" {
		query = `
			SELECT COALESCE(SUM(oi.price * oi.quantity), 0)
			FROM order_items oi
			JOIN orders o   ON o.id = oi.order_id
			JOIN products p ON p.id = oi.product_id
			WHERE o.status <> $1 AND p.supplier_id = $2`
		args = append(args, supplierID)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

// CountLowStockProducts productos con quantity <= umbral propio o, si no tiene, defaultThreshold.
func (r *StatsRepo) CountLowStockProducts(ctx context.Context, supplierID string, defaultThreshold int) (int, error) {
	return r.count(ctx, "count low stock products", `
		SELECT COUNT(*) FROM products
		WHERE ($1::text = '' OR supplier_id = $1::text)
		  AND quantity <= COALESCE(low_stock_threshold, $2::int)`, supplierID, defaultThreshold)
}

// CountMessagesByStatus mensajes de contacto en el estado indicado.
func (r *StatsRepo) CountMessagesByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, "count messages", `SELECT COUNT(*) FROM contact_messages WHERE status = $1`, status)
}

func (r *StatsRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
