package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// UserWithStats usuario con contadores agregados para el listado de administración.
type UserWithStats struct {
	entity.User
	ProductCount int // productos publicados (proveedores)
	OrderCount   int // pedidos realizados (clientes)
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Upsert crea el usuario o actualiza su perfil conservando el rol existente.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	ListWithStats(ctx context.Context) ([]UserWithStats, error)
}
