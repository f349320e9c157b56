package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.ContactMessageRepository = (*ContactMessageRepo)(nil)

const messageColumns = `id, name, email, subject, message, status, created_at`

// ContactMessageRepo implementación del puerto ContactMessageRepository sobre PostgreSQL.
type ContactMessageRepo struct {
	q Querier
}

// NewContactMessageRepository construye el adaptador.
func NewContactMessageRepository(q Querier) *ContactMessageRepo {
	return &ContactMessageRepo{q: q}
}

// Create persiste el mensaje y completa ID y created_at.
func (r *ContactMessageRepo) Create(ctx context.Context, m *entity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, m.Name, m.Email, m.Subject, m.Message, m.Status, m.CreatedAt).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List todos los mensajes, más recientes primero.
func (r *ContactMessageRepo) List(ctx context.Context) ([]*entity.ContactMessage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.ContactMessage, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateStatus devuelve nil, nil si el mensaje no existe.
func (r *ContactMessageRepo) UpdateStatus(ctx context.Context, id int64, status string) (*entity.ContactMessage, error) {
	m, err := scanMessage(r.q.QueryRow(ctx,
		`UPDATE contact_messages SET status = $2 WHERE id = $1 RETURNING `+messageColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update contact message status: %w", err)
	}
	return m, nil
}

func scanMessage(row pgx.Row) (*entity.ContactMessage, error) {
	var m entity.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
