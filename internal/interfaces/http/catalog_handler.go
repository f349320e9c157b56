package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
)

// CatalogHandler lectura pública del catálogo.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
}

func NewCatalogHandler(categories *usecase.CategoryUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories}
}

// ListCategories godoc
// @Summary      Categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.categories.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
