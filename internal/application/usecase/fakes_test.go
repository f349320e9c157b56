package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

// memProducts ProductRepository en memoria con la misma semántica de propiedad que Postgres.
type memProducts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*entity.Product
}

func newMemProducts() *memProducts { return &memProducts{rows: map[int64]*entity.Product{}} }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.rows {
		if x.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) has(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok
}

func (m *memProducts) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.rows {
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) UpdateOwned(_ context.Context, id int64, supplierID string, patch entity.ProductPatch) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.SupplierID != supplierID {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
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
	cp := *p
	return &cp, nil
}

func (m *memProducts) DeleteOwned(_ context.Context, id int64, supplierID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.SupplierID != supplierID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memOrders struct {
	mu   sync.Mutex
	rows map[int64]*entity.Order
	// productOwner productID -> supplierID, para simular el join con products.
	productOwner map[int64]string
}

func (m *memOrders) List(context.Context) ([]*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Order, 0, len(m.rows))
	for _, o := range m.rows {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memOrders) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Order, error) {
	all, _ := m.List(context.Background())
	var out []*entity.Order
	for _, o := range all {
		var mine []entity.OrderItem
		for _, it := range o.Items {
			if m.productOwner[it.ProductID] == supplierID {
				mine = append(mine, it)
			}
		}
		if len(mine) > 0 {
			o.Items = mine
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id int64, status string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

type memMessages struct {
	mu     sync.Mutex
	nextID int64
	rows   []*entity.ContactMessage
}

func (m *memMessages) Create(_ context.Context, msg *entity.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg.ID = m.nextID
	cp := *msg
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memMessages) List(context.Context) ([]*entity.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.ContactMessage(nil), m.rows...), nil
}

func (m *memMessages) UpdateStatus(_ context.Context, id int64, status string) (*entity.ContactMessage, error) {
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

type memUsers struct {
	rows []repository.UserWithStats
}

func (m *memUsers) Create(context.Context, *entity.User) error { return nil }
func (m *memUsers) GetByID(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (m *memUsers) Upsert(_ context.Context, u *entity.User) (*entity.User, error) { return u, nil }
func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}
func (m *memUsers) ListWithStats(context.Context) ([]repository.UserWithStats, error) {
	return m.rows, nil
}

// tagStripper sanitizador mínimo para tests: descarta todo lo que esté entre < y >.
type tagStripper struct{}

func (tagStripper) Sanitize(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
		case r == '>':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
