package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// ProductHandler productos del proveedor y listado global del admin.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// ListMine godoc
// @Summary      Productos del proveedor autenticado
// @Tags         supplier
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/supplier/products [get]
func (h *ProductHandler) ListMine(c *fiber.Ctx, principal *entity.User) error {
	list, err := h.uc.ListBySupplier(c.Context(), principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear producto (supplierId = usuario autenticado)
// @Tags         supplier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx, principal *entity.User) error {
	var in dto.CreateProductRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), principal.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto propio
// @Tags         supplier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx, principal *entity.User) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.Context(), principal.ID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto propio
// @Tags         supplier
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx, principal *entity.User) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), principal.ID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAll godoc
// @Summary      Todos los productos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/admin/products [get]
func (h *ProductHandler) ListAll(c *fiber.Ctx, _ *entity.User) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
