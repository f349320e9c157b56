package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/marketplace-backoffice/internal/application/auth"
	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
)

const (
	stateCookieName = "oidc_state"
	stateCookieTTL  = 10 * time.Minute
)

// SessionCookieConfig parámetros de la cookie de sesión.
type SessionCookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool // solo HTTPS (producción)
}

// FederatedProvider flujo authorization-code contra el proveedor OIDC.
type FederatedProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (auth.FederatedIdentity, error)
}

// AuthHandler maneja registro, login, logout y el flujo OIDC opcional.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	provider FederatedProvider // nil = login federado deshabilitado
	cookie   SessionCookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, provider FederatedProvider, cookie SessionCookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, provider: provider, cookie: cookie}
}

// Register godoc
// @Summary      Registrar usuario (rol customer)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.RegisterUser(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, out.SessionID)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.endSession(c); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CurrentUser godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthenticated)
	}
	user, err := h.uc.CurrentUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// FederatedLogin redirige al proveedor OIDC con un state aleatorio guardado en cookie.
func (h *AuthHandler) FederatedLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(stateCookieTTL),
	})
	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusFound)
}

// FederatedCallback valida el state, canjea el código, crea la sesión y vuelve a "/".
func (h *AuthHandler) FederatedCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return respondError(c, domain.FieldError("state", "state inválido o ausente"))
	}
	h.clearCookie(c, stateCookieName)

	code := c.Query("code")
	if code == "" {
		return respondError(c, domain.FieldError("code", "requerido"))
	}
	identity, err := h.provider.Exchange(c.Context(), code)
	if err != nil {
		log.Warn().Err(err).Str("request_id", requestID(c)).Msg("callback OIDC rechazado")
		return respondError(c, domain.ErrUnauthorized)
	}
	out, err := h.uc.CompleteFederatedLogin(c.Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, out.SessionID)
	return c.Redirect("/", fiber.StatusFound)
}

// FederatedLogout cierra la sesión y redirige a "/".
func (h *AuthHandler) FederatedLogout(c *fiber.Ctx) error {
	if err := h.endSession(c); err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) endSession(c *fiber.Ctx) error {
	if sid := c.Cookies(h.cookie.Name); sid != "" {
		if err := h.uc.Logout(c.Context(), sid); err != nil {
			return err
		}
	}
	h.clearCookie(c, h.cookie.Name)
	return nil
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, sessionID string) {
	if sessionID == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.cookie.TTL),
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
