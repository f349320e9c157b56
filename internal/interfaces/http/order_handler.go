package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// OrderHandler pedidos: listado admin, listado filtrado del proveedor y cambio de estado.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// ListAll godoc
// @Summary      Todos los pedidos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx, _ *entity.User) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListMine godoc
// @Summary      Pedidos con líneas de productos del proveedor
// @Tags         supplier
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/supplier/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx, principal *entity.User) error {
	list, err := h.uc.ListBySupplier(c.Context(), principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx, _ *entity.User) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateOrderStatusRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
