package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/analytics"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// StatsHandler KPIs de los tableros de admin y proveedor.
type StatsHandler struct {
	uc *analytics.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *analytics.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Admin godoc
// @Summary      Estadísticas globales
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *StatsHandler) Admin(c *fiber.Ctx, _ *entity.User) error {
	out, err := h.uc.AdminStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Supplier godoc
// @Summary      Estadísticas del proveedor autenticado
// @Tags         supplier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupplierStatsDTO
// @Router       /api/supplier/stats [get]
func (h *StatsHandler) Supplier(c *fiber.Ctx, principal *entity.User) error {
	out, err := h.uc.SupplierStats(c.Context(), principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
