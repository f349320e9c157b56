package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
	"github.com/jhoicas/marketplace-backoffice/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// FederatedIdentity claims relevantes devueltos por el proveedor OIDC tras el callback.
type FederatedIdentity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesiones y resolución del principal.
// sessions puede ser nil: entonces solo se emiten tokens Bearer.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	sessions   repository.SessionRepository
	jwtCfg     JWTConfig
	sessionTTL time.Duration
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions repository.SessionRepository, jwtCfg JWTConfig, sessionTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg, sessionTTL: sessionTTL}
}

// RegisterUser crea un usuario local con rol customer. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         entity.RoleCustomer,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y, si hay almacén, abre una sesión.
// Email desconocido, usuario federado sin password o password incorrecta devuelven ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(ctx, user)
}

// CompleteFederatedLogin crea o actualiza el usuario federado (conservando su rol) y abre sesión.
func (uc *AuthUseCase) CompleteFederatedLogin(ctx context.Context, id FederatedIdentity) (*dto.LoginResponse, error) {
	if id.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	user, err := uc.userRepo.Upsert(ctx, &entity.User{
		ID:              id.Subject,
		Email:           normalizeEmail(id.Email),
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
		Role:            entity.RoleCustomer,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, user)
}

// Logout elimina la sesión. Un id vacío o desconocido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if uc.sessions == nil || sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

// ResolveSession traduce el id de sesión de la cookie al id de usuario.
// Sesión inexistente o expirada devuelve ErrUnauthenticated.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	if uc.sessions == nil || sessionID == "" {
		return "", domain.ErrUnauthenticated
	}
	s, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s == nil || time.Now().After(s.ExpiresAt) {
		return "", domain.ErrUnauthenticated
	}
	return s.UserID, nil
}

// ParseToken valida un token Bearer y devuelve el id del usuario.
func (uc *AuthUseCase) ParseToken(token string) (string, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return userID, nil
}

// FindPrincipal carga el registro completo del usuario autenticado; nil, nil si no existe.
func (uc *AuthUseCase) FindPrincipal(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// CurrentUser devuelve el perfil del usuario autenticado. Usuario borrado = ErrUnauthenticated.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	out := &dto.LoginResponse{Token: token, User: *toUserResponse(user)}
	if uc.sessions == nil {
		return out, nil
	}
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	out.SessionID = session.ID
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
