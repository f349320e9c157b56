package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-backoffice/internal/application/dto"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.byID[u.ID]; ok {
		prev.Email, prev.FirstName, prev.LastName = u.Email, u.FirstName, u.LastName
		prev.ProfileImageURL = u.ProfileImageURL
		cp := *prev
		return &cp, nil
	}
	cp := *u
	m.byID[u.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *memUsers) ListWithStats(context.Context) ([]repository.UserWithStats, error) {
	return nil, nil
}

type memSessions struct {
	mu   sync.Mutex
	byID map[string]entity.Session
}

func newMemSessions() *memSessions { return &memSessions{byID: map[string]entity.Session{}} }

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = *s
	return nil
}

func (m *memSessions) FindByID(_ context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

var testJWT = JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}

// ── Registro y login ─────────────────────────────────────────────────────────

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthUseCase(newMemUsers(), newMemSessions(), testJWT, time.Hour)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "supersecreta", FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleCustomer, u.Role, "el registro nunca asigna otro rol")

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.SessionID)

	userID, err := uc.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	fromSession, err := uc.ResolveSession(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, fromSession)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthUseCase(newMemUsers(), nil, testJWT, time.Hour)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "X@example.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	uc := NewAuthUseCase(users, nil, testJWT, time.Hour)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// usuario federado sin password local
	users.byID["oidc-1"] = &entity.User{ID: "oidc-1", Email: "fed@example.com", Role: entity.RoleCustomer}
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "fed@example.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinAlmacenDeSesiones(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthUseCase(newMemUsers(), nil, testJWT, time.Hour)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "12345678"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "x@example.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Empty(t, out.SessionID)

	_, err = uc.ResolveSession(ctx, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ── Sesiones ─────────────────────────────────────────────────────────────────

func TestResolveSession_ExpiradaODesconocida(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessions()
	uc := NewAuthUseCase(newMemUsers(), sessions, testJWT, time.Hour)

	_, err := uc.ResolveSession(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, sessions.Create(ctx, &entity.Session{ID: "old", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}))
	_, err = uc.ResolveSession(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogout_EliminaSesion(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessions()
	uc := NewAuthUseCase(newMemUsers(), sessions, testJWT, time.Hour)
	require.NoError(t, sessions.Create(ctx, &entity.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, uc.Logout(ctx, "s1"))
	_, err := uc.ResolveSession(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.NoError(t, uc.Logout(ctx, ""), "logout sin sesión no es error")
}

// ── Federado y principal ─────────────────────────────────────────────────────

func TestCompleteFederatedLogin_ConservaRol(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	uc := NewAuthUseCase(users, newMemSessions(), testJWT, time.Hour)

	out, err := uc.CompleteFederatedLogin(ctx, FederatedIdentity{Subject: "sub-1", Email: "p@example.com", FirstName: "Pia"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.NotEmpty(t, out.SessionID)

	require.NoError(t, users.UpdateRole(ctx, "sub-1", entity.RoleSupplier))

	out, err = uc.CompleteFederatedLogin(ctx, FederatedIdentity{Subject: "sub-1", Email: "p@example.com", FirstName: "Pía"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, out.User.Role, "el upsert no pisa el rol")
	assert.Equal(t, "Pía", out.User.FirstName)

	_, err = uc.CompleteFederatedLogin(ctx, FederatedIdentity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCurrentUser_UsuarioBorrado(t *testing.T) {
	uc := NewAuthUseCase(newMemUsers(), nil, testJWT, time.Hour)
	_, err := uc.CurrentUser(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestParseToken_Invalido(t *testing.T) {
	uc := NewAuthUseCase(newMemUsers(), nil, testJWT, time.Hour)
	_, err := uc.ParseToken("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
