package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// Sanitizer limpia texto libre enviado por visitantes antes de persistirlo.
type Sanitizer interface {
	Sanitize(s string) string
}

// ContactMessageUseCase flujo de mensajes de contacto: alta pública y bandeja de administración.
type ContactMessageUseCase struct {
	repo      repository.ContactMessageRepository
	sanitizer Sanitizer
}

// NewContactMessageUseCase construye el caso de uso.
func NewContactMessageUseCase(repo repository.ContactMessageRepository, sanitizer Sanitizer) *ContactMessageUseCase {
	return &ContactMessageUseCase{repo: repo, sanitizer: sanitizer}
}

// Create persiste el mensaje saneado con estado unread.
func (uc *ContactMessageUseCase) Create(ctx context.Context, in dto.CreateContactMessageRequest) (*dto.ContactMessageResponse, error) {
	msg := &entity.ContactMessage{
		Name:      uc.clean(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:   uc.clean(in.Subject),
		Message:   uc.clean(in.Message),
		Status:    entity.MessageStatusUnread,
		CreatedAt: time.Now(),
	}
	fields := map[string]string{}
	for name, v := range map[string]string{"name": msg.Name, "subject": msg.Subject, "message": msg.Message} {
		if v == "" {
			fields[name] = "vacío tras eliminar el marcado"
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("datos inválidos", fields)
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	out := toMessageResponse(msg)
	return &out, nil
}

// List bandeja completa, más recientes primero.
func (uc *ContactMessageUseCase) List(ctx context.Context) ([]dto.ContactMessageResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactMessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	return out, nil
}

// UpdateStatus marca el mensaje como read o unread.
func (uc *ContactMessageUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.ContactMessageResponse, error) {
	if !entity.IsValidMessageStatus(status) {
		return nil, domain.FieldError("status", "debe ser unread o read")
	}
	msg, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domain.ErrMessageNotFound
	}
	out := toMessageResponse(msg)
	return &out, nil
}

func (uc *ContactMessageUseCase) clean(s string) string {
	if uc.sanitizer != nil {
		s = uc.sanitizer.Sanitize(s)
	}
	return strings.TrimSpace(s)
}

func toMessageResponse(m *entity.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
