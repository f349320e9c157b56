package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
	"github.com/jhoicas/marketplace-backoffice/pkg/slug"
)

// ProductUseCase casos de uso de productos. Toda mutación se limita a los productos del proveedor
// que actúa; la propiedad se verifica en el propio repositorio (UPDATE/DELETE condicionados).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// ListBySupplier productos del proveedor indicado.
func (uc *ProductUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, entity.ProductFilter{SupplierID: supplierID})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListAll todos los productos de la plataforma (administración).
func (uc *ProductUseCase) ListAll(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, entity.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Create crea un producto cuyo dueño es siempre supplierID, ignorando el supplierId del payload.
// Si no llega slug se deriva del nombre.
func (uc *ProductUseCase) Create(ctx context.Context, supplierID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	s, err := resolveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	product := &entity.Product{
		SupplierID:        supplierID,
		Name:              strings.TrimSpace(in.Name),
		Slug:              s,
		Description:       in.Description,
		ShortDescription:  in.ShortDescription,
		Price:             *in.Price,
		ComparePrice:      in.ComparePrice,
		SKU:               strings.TrimSpace(in.SKU),
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		CategoryID:        in.CategoryID,
		Featured:          in.Featured,
		Active:            active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica la actualización parcial si el producto existe y pertenece a supplierID.
// En cualquier otro caso devuelve ErrProductNotFound, sin revelar si el producto existe.
func (uc *ProductUseCase) Update(ctx context.Context, supplierID string, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Name:              trimmed(in.Name),
		Description:       in.Description,
		ShortDescription:  in.ShortDescription,
		Price:             in.Price,
		ComparePrice:      in.ComparePrice,
		SKU:               trimmed(in.SKU),
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		CategoryID:        in.CategoryID,
		Featured:          in.Featured,
		Active:            in.Active,
	}
	if in.Slug != nil {
		s, err := resolveSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		patch.Slug = &s
	}
	product, err := uc.repo.UpdateOwned(ctx, id, supplierID, patch)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto si pertenece a supplierID; si no, ErrProductNotFound.
func (uc *ProductUseCase) Delete(ctx context.Context, supplierID string, id int64) error {
	deleted, err := uc.repo.DeleteOwned(ctx, id, supplierID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrProductNotFound
	}
	return nil
}

func resolveSlug(raw, name string) (string, error) {
	src := strings.TrimSpace(raw)
	if src == "" {
		src = name
	}
	s := slug.Make(src)
	if s == "" {
		return "", domain.FieldError("slug", "no se puede derivar un slug válido")
	}
	return s, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SupplierID:        p.SupplierID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		ShortDescription:  p.ShortDescription,
		Price:             p.Price,
		ComparePrice:      p.ComparePrice,
		SKU:               p.SKU,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		CategoryID:        p.CategoryID,
		Featured:          p.Featured,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
