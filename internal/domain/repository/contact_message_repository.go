package repository

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// ContactMessageRepository define el puerto de persistencia para ContactMessage.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	List(ctx context.Context) ([]*entity.ContactMessage, error)
	// UpdateStatus devuelve nil, nil si el mensaje no existe.
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.ContactMessage, error)
}
