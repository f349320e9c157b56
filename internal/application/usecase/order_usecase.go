package usecase

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// OrderUseCase listados de pedidos y cambio de estado (administración).
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// ListAll todos los pedidos.
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListBySupplier pedidos con al menos una línea de un producto del proveedor.
func (uc *OrderUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]dto.OrderResponse, error) {
	list, err := uc.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// UpdateStatus fija el estado del pedido. Cualquier transición es válida; repetirla es idempotente.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.FieldError("status", "estado de pedido desconocido")
	}
	order, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	out := toOrderResponse(order)
	return &out, nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
