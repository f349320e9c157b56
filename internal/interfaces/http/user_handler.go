package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Usuarios con conteo de productos y pedidos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AdminUserResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx, _ *entity.User) error {
	list, err := h.uc.ListWithStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
