package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `o.id, o.customer_id, o.status, o.total, o.created_at, o.updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// List todos los pedidos con todas sus líneas.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	orders, err := r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders o ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders, ""); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListBySupplier pedidos con al menos una línea de un producto del proveedor (join
// order_items -> products por supplier_id). Solo se adjuntan las líneas de ese proveedor.
func (r *OrderRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.supplier_id = $1
		)
		ORDER BY o.created_at DESC, o.id DESC`
	orders, err := r.queryOrders(ctx, query, supplierID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders, supplierID); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus fija el estado y devuelve el pedido actualizado; nil, nil si no existe.
// updated_at solo avanza si el estado cambia: repetir la llamada devuelve el mismo registro.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	query := `
		UPDATE orders o SET
			status     = $2,
			updated_at = CASE WHEN o.status = $2 THEN o.updated_at ELSE now() END
		WHERE o.id = $1
		RETURNING ` + orderColumns
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id, status).Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	orders := []*entity.Order{&o}
	if err := r.attachItems(ctx, orders, ""); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Order, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []entity.OrderItem{}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// attachItems carga las líneas de los pedidos en una sola consulta. Con supplierID no vacío
// solo trae las líneas de productos de ese proveedor.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order, supplierID string) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	query := `
		SELECT oi.id, oi.order_id, COALESCE(oi.product_id, 0), oi.quantity, oi.price
		FROM order_items oi
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id`
	args := []any{ids}
	if supplierID != "" {
		query = `
			SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = ANY($1) AND p.supplier_id = $2
			ORDER BY oi.order_id, oi.id`
		args = append(args, supplierID)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}
