package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-backoffice/internal/application/analytics"
	"github.com/jhoicas/marketplace-backoffice/internal/application/auth"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/security"
	apphttp "github.com/jhoicas/marketplace-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/marketplace-backoffice/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "marketplace-backoffice-test"
	testCookie    = "sid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	calls   atomic.Int64
	mu      sync.Mutex
	rows    map[string]*entity.User
	failGet error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.rows {
		if u.Email != "" && x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.rows[u.ID]; ok {
		existing.Email, existing.FirstName, existing.LastName = u.Email, u.FirstName, u.LastName
		cp := *existing
		return &cp, nil
	}
	cp := *u
	m.rows[u.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *memUsers) ListWithStats(_ context.Context) ([]repository.UserWithStats, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.UserWithStats, 0, len(m.rows))
	for _, u := range m.rows {
		out = append(out, repository.UserWithStats{User: *u, ProductCount: 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memSessions struct {
	calls atomic.Int64
	mu    sync.Mutex
	rows  map[string]*entity.Session
}

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSessions) FindByID(_ context.Context, id string) (*entity.Session, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// memProducts aplica la propiedad igual que el UPDATE condicional de Postgres.
type memProducts struct {
	calls  atomic.Int64
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.rows {
		if x.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

// stored copia de la fila tal como quedó en el almacén; nil si no existe.
func (m *memProducts) stored(id int64) *entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (m *memProducts) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.rows {
		if f.SupplierID == "" || p.SupplierID == f.SupplierID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) UpdateOwned(_ context.Context, id int64, supplierID string, patch entity.ProductPatch) (*entity.Product, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.SupplierID != supplierID {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *memProducts) DeleteOwned(_ context.Context, id int64, supplierID string) (bool, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.SupplierID != supplierID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type staticCategories []*entity.Category

func (s staticCategories) List(context.Context) ([]*entity.Category, error) { return s, nil }

// memOrders resuelve el proveedor de cada línea con productOwner.
type memOrders struct {
	calls        atomic.Int64
	mu           sync.Mutex
	rows         []*entity.Order
	productOwner map[int64]string
}

func (m *memOrders) List(context.Context) ([]*entity.Order, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Order, 0, len(m.rows))
	for _, o := range m.rows {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrders) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Order, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.rows {
		var items []entity.OrderItem
		for _, it := range o.Items {
			if m.productOwner[it.ProductID] == supplierID {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		cp := *o
		cp.Items = items
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id int64, status string) (*entity.Order, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.rows {
		if o.ID == id {
			if o.Status != status {
				o.Status = status
				o.UpdatedAt = time.Now()
			}
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

type memMessages struct {
	calls  atomic.Int64
	mu     sync.Mutex
	nextID int64
	rows   []*entity.ContactMessage
}

func (m *memMessages) Create(_ context.Context, msg *entity.ContactMessage) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg.ID = m.nextID
	cp := *msg
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memMessages) List(context.Context) ([]*entity.ContactMessage, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.ContactMessage, 0, len(m.rows))
	for _, msg := range m.rows {
		cp := *msg
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memMessages) UpdateStatus(_ context.Context, id int64, status string) (*entity.ContactMessage, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.rows {
		if msg.ID == id {
			msg.Status = status
			cp := *msg
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeStats devuelve valores fijos y recuerda el proveedor consultado.
type fakeStats struct {
	calls    atomic.Int64
	mu       sync.Mutex
	supplier string
}

func (f *fakeStats) seen(id string) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != "" {
		f.supplier = id
	}
}

func (f *fakeStats) CountUsers(context.Context) (int, error) {
	f.seen("")
	return 10, nil
}
func (f *fakeStats) CountUsersByRole(_ context.Context, role string) (int, error) {
	f.seen("")
	if role == entity.RoleSupplier {
		return 3, nil
	}
	return 0, nil
}
func (f *fakeStats) CountProducts(_ context.Context, supplierID string) (int, error) {
	f.seen(supplierID)
	if supplierID == "" {
		return 7, nil
	}
	return 2, nil
}
func (f *fakeStats) CountOrders(_ context.Context, supplierID string) (int, error) {
	f.seen(supplierID)
	return 4, nil
}
func (f *fakeStats) SumRevenue(_ context.Context, supplierID string) (decimal.Decimal, error) {
	f.seen(supplierID)
	return decimal.RequireFromString("1234.567"), nil
}
func (f *fakeStats) CountLowStockProducts(_ context.Context, supplierID string, _ int) (int, error) {
	f.seen(supplierID)
	return 1, nil
}
func (f *fakeStats) CountMessagesByStatus(context.Context, string) (int, error) {
	f.seen("")
	return 2, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: app completa (NewApp + Router) sobre los fakes
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	users    *memUsers
	sessions *memSessions
	products *memProducts
	orders   *memOrders
	messages *memMessages
	stats    *fakeStats
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    &memUsers{rows: map[string]*entity.User{}},
		sessions: &memSessions{rows: map[string]*entity.Session{}},
		products: &memProducts{rows: map[int64]*entity.Product{}},
		orders:   &memOrders{productOwner: map[int64]string{}},
		messages: &memMessages{},
		stats:    &fakeStats{},
	}
	categories := staticCategories{
		{ID: 1, Name: "Bebidas", Slug: "bebidas"},
		{ID: 2, Name: "Café", Slug: "cafe"},
	}

	authUC := auth.NewAuthUseCase(env.users, env.sessions,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, time.Hour)

	env.app = apphttp.NewApp(apphttp.AppConfig{Name: "test"})
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(env.products),
		CategoryUC: usecase.NewCategoryUseCase(categories),
		OrderUC:    usecase.NewOrderUseCase(env.orders),
		MessageUC:  usecase.NewContactMessageUseCase(env.messages, security.NewContentSanitizer()),
		UserUC:     usecase.NewUserUseCase(env.users),
		StatsUC:    analytics.NewStatsUseCase(env.stats, entity.DefaultLowStockThreshold),
		Session:    apphttp.SessionCookieConfig{Name: testCookie, TTL: time.Hour},
	})
	return env
}

// seedUser crea un usuario con el rol indicado y devuelve su cabecera Authorization.
func (e *testEnv) seedUser(t *testing.T, id, role string) string {
	t.Helper()
	e.users.rows[id] = &entity.User{ID: id, Email: id + "@example.com", Role: role}
	return bearerFor(t, id)
}

func (e *testEnv) seedProduct(supplierID, name string) int64 {
	p := &entity.Product{
		SupplierID: supplierID,
		Name:       name,
		Slug:       strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Price:      decimal.RequireFromString("10.00"),
		Quantity:   3,
		Active:     true,
	}
	_ = e.products.Create(context.Background(), p)
	return p.ID
}

// storeCalls total de llamadas recibidas por los repositorios del entorno.
func (e *testEnv) storeCalls() int64 {
	return e.users.calls.Load() + e.sessions.calls.Load() + e.products.calls.Load() +
		e.orders.calls.Load() + e.messages.calls.Load() + e.stats.calls.Load()
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "", testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición contra la app; auth es el valor de Authorization (vacío = sin cabecera).
func (e *testEnv) do(t *testing.T, method, path, auth, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// errorBody sobre de error común.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}
