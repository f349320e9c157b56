package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// MessageHandler formulario de contacto (público) y bandeja del admin.
type MessageHandler struct {
	uc *usecase.ContactMessageUseCase
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.ContactMessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactMessageRequest  true  "Mensaje"
// @Success      200   {object}  dto.ContactMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactMessageRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Mensajes de contacto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContactMessageResponse
// @Router       /api/admin/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx, _ *entity.User) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Marcar mensaje como leído / no leído
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID del mensaje"
// @Param        body  body  dto.UpdateMessageStatusRequest  true  "unread | read"
// @Success      200   {object}  dto.ContactMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/messages/{id}/status [put]
func (h *MessageHandler) UpdateStatus(c *fiber.Ctx, _ *entity.User) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMessageStatusRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
