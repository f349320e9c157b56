package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// principalResolver carga el usuario autenticado desde el store.
// Se define aquí (y no se importa auth) para que el guard dependa solo de lo que usa.
type principalResolver interface {
	FindPrincipal(ctx context.Context, userID string) (*entity.User, error)
}

// PrincipalHandler handler que recibe el principal ya autorizado como argumento explícito.
type PrincipalHandler func(c *fiber.Ctx, principal *entity.User) error

// Guard comprueba el rol del llamante antes de ejecutar el handler.
type Guard struct {
	resolver principalResolver
}

// NewGuard crea el guard de roles.
func NewGuard(resolver principalResolver) *Guard {
	return &Guard{resolver: resolver}
}

// Require envuelve un PrincipalHandler: sin identidad 401, error del store 500,
// usuario inexistente o rol fuera de la lista 403. El rol se lee del store en cada petición.
//
// Uso:
//
//	supplier.Get("/products", guard.Require(entity.RoleSupplier)(h.ListMine))
func (g *Guard) Require(roles ...string) func(PrincipalHandler) fiber.Handler {
	return func(next PrincipalHandler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			userID := GetUserID(c)
			if userID == "" {
				return respondError(c, domain.ErrUnauthenticated)
			}
			user, err := g.resolver.FindPrincipal(c.Context(), userID)
			if err != nil {
				return respondError(c, err)
			}
			if user == nil || !user.HasRole(roles...) {
				return respondError(c, domain.ErrForbidden)
			}
			return next(c, user)
		}
	}
}
