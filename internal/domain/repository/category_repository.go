package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// CategoryRepository define el puerto de lectura del catálogo de categorías.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
}
