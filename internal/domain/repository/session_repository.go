package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// SessionRepository almacén de sesiones opacas. FindByID devuelve nil, nil si no existe o expiró.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
