// Package analytics contiene los casos de uso de métricas agregadas para los dashboards
// de administración y de proveedor.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// StatsUseCase genera las métricas de los dashboards.
//
// Fuente de datos: StatsRepository (consultas read-only). Cada métrica es una consulta
// independiente; se lanzan en paralelo y el primer error cancela el resto.
type StatsUseCase struct {
	statsRepo       repository.StatsRepository
	lowStockDefault int
}

// NewStatsUseCase construye el caso de uso. lowStockDefault aplica a productos sin umbral propio.
func NewStatsUseCase(statsRepo repository.StatsRepository, lowStockDefault int) *StatsUseCase {
	if lowStockDefault < 0 {
		lowStockDefault = entity.DefaultLowStockThreshold
	}
	return &StatsUseCase{statsRepo: statsRepo, lowStockDefault: lowStockDefault}
}

// AdminStats métricas globales de la plataforma.
func (uc *StatsUseCase) AdminStats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	var out dto.AdminStatsDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalUsers, err = uc.statsRepo.CountUsers(gctx)
		return wrap("usuarios", err)
	})
	g.Go(func() (err error) {
		out.ActiveSuppliers, err = uc.statsRepo.CountUsersByRole(gctx, entity.RoleSupplier)
		return wrap("proveedores", err)
	})
	g.Go(func() (err error) {
		out.TotalProducts, err = uc.statsRepo.CountProducts(gctx, "")
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		out.TotalOrders, err = uc.statsRepo.CountOrders(gctx, "")
		return wrap("pedidos", err)
	})
	g.Go(func() (err error) {
		out.TotalRevenue, err = uc.statsRepo.SumRevenue(gctx, "")
		return wrap("ingresos", err)
	})
	g.Go(func() (err error) {
		out.UnreadMessages, err = uc.statsRepo.CountMessagesByStatus(gctx, entity.MessageStatusUnread)
		return wrap("mensajes", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)
	return &out, nil
}

// SupplierStats métricas restringidas a los productos del proveedor.
func (uc *StatsUseCase) SupplierStats(ctx context.Context, supplierID string) (*dto.SupplierStatsDTO, error) {
	var out dto.SupplierStatsDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalProducts, err = uc.statsRepo.CountProducts(gctx, supplierID)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		out.TotalOrders, err = uc.statsRepo.CountOrders(gctx, supplierID)
		return wrap("pedidos", err)
	})
	g.Go(func() (err error) {
		out.TotalRevenue, err = uc.statsRepo.SumRevenue(gctx, supplierID)
		return wrap("ingresos", err)
	})
	g.Go(func() (err error) {
		out.LowStockProducts, err = uc.statsRepo.CountLowStockProducts(gctx, supplierID, uc.lowStockDefault)
		return wrap("stock bajo", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)
	return &out, nil
}

func wrap(metric string, err error) error {
	if err != nil {
		return fmt.Errorf("stats: %s: %w", metric, err)
	}
	return nil
}
