package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
)

// LocalUserID clave en c.Locals con el id del usuario autenticado.
const LocalUserID = "user_id"

// identityResolver resuelve la identidad a partir de un token o de una sesión.
// Lo implementa *auth.AuthUseCase; la interfaz mantiene el middleware testeable.
type identityResolver interface {
	ParseToken(token string) (string, error)
	ResolveSession(ctx context.Context, sessionID string) (string, error)
}

// AuthMiddleware identifica al llamante: primero Bearer JWT, si no hay cabecera Authorization
// se intenta la cookie de sesión. Sin identidad válida responde 401.
func AuthMiddleware(resolver identityResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identify(c, resolver, cookieName)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

func identify(c *fiber.Ctx, resolver identityResolver, cookieName string) (string, error) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", domain.ErrUnauthenticated
		}
		return resolver.ParseToken(token)
	}

	sid := c.Cookies(cookieName)
	if sid == "" {
		return "", domain.ErrUnauthenticated
	}
	// Una sesión caducada o desconocida llega como ErrUnauthenticated (401);
	// un fallo del store sale como 500.
	return resolver.ResolveSession(c.Context(), sid)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
