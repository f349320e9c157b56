package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, supplier_id, name, slug, description, short_description, price, compare_price,
	sku, quantity, low_stock_threshold, category_id, featured, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y completa ID y timestamps generados.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (supplier_id, name, slug, description, short_description, price, compare_price,
			sku, quantity, low_stock_threshold, category_id, featured, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.SupplierID, p.Name, p.Slug, p.Description, p.ShortDescription, p.Price, p.ComparePrice,
		p.SKU, p.Quantity, p.LowStockThreshold, p.CategoryID, p.Featured, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// List lista productos, opcionalmente filtrados por proveedor, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.SupplierID != "" {
		query += ` WHERE supplier_id = $1`
		args = append(args, filter.SupplierID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateOwned aplica el patch en una única sentencia condicionada por id y supplier_id.
// updated_at siempre se actualiza, así un patch vacío también verifica la propiedad.
func (r *ProductRepo) UpdateOwned(ctx context.Context, id int64, supplierID string, patch entity.ProductPatch) (*entity.Product, error) {
	args := []any{id, supplierID}
	sets := []string{"updated_at = now()"}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.ShortDescription != nil {
		set("short_description", *patch.ShortDescription)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.ComparePrice != nil {
		set("compare_price", *patch.ComparePrice)
	}
	if patch.SKU != nil {
		set("sku", *patch.SKU)
	}
	if patch.Quantity != nil {
		set("quantity", *patch.Quantity)
	}
	if patch.LowStockThreshold != nil {
		set("low_stock_threshold", *patch.LowStockThreshold)
	}
	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}
	if patch.Featured != nil {
		set("featured", *patch.Featured)
	}
	if patch.Active != nil {
		set("active", *patch.Active)
	}

	query := `UPDATE products SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND supplier_id = $2 RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapProductWriteError("update product", err)
	}
	return p, nil
}

// DeleteOwned borra el producto solo si pertenece al proveedor. false = no había fila que borrar.
func (r *ProductRepo) DeleteOwned(ctx context.Context, id int64, supplierID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND supplier_id = $2`, id, supplierID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SupplierID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription, &p.Price, &p.ComparePrice,
		&p.SKU, &p.Quantity, &p.LowStockThreshold, &p.CategoryID, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapProductWriteError traduce violaciones de constraints a errores de dominio.
func mapProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.FieldError("categoryId", "la categoría no existe")
	case isNumericOutOfRange(err):
		return domain.NewValidationError("valor numérico fuera de rango", nil)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
