package usecase

import (
	"context"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// ListWithStats lista todos los usuarios con sus contadores (administración).
func (uc *UserUseCase) ListWithStats(ctx context.Context) ([]dto.AdminUserResponse, error) {
	rows, err := uc.repo.ListWithStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminUserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.AdminUserResponse{
			UserResponse: *entityToUserResponse(&rows[i].User),
			ProductCount: rows[i].ProductCount,
			OrderCount:   rows[i].OrderCount,
		})
	}
	return out, nil
}

// AssignRole cambia el rol de un usuario. Solo se invoca fuera de banda (cmd/setrole).
func (uc *UserUseCase) AssignRole(ctx context.Context, userID, role string) error {
	if !entity.IsValidRole(role) {
		return domain.FieldError("role", "debe ser admin, supplier o customer")
	}
	return uc.repo.UpdateRole(ctx, userID, role)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
