package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// El email es NULL para usuarios federados que no lo informan; se expone como "".
const userColumns = `id, COALESCE(email, ''), first_name, last_name, profile_image_url, role, password_hash, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, password_hash, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL, user.Role, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email; nil, nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Upsert inserta el usuario o actualiza su perfil. El rol y el hash existentes no se tocan.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, password_hash, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email             = EXCLUDED.email,
			first_name        = EXCLUDED.first_name,
			last_name         = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at        = now()
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL, user.Role, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

// UpdateRole cambia el rol; ErrUserNotFound si el id no existe.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListWithStats todos los usuarios con productos publicados y pedidos realizados.
func (r *UserRepo) ListWithStats(ctx context.Context) ([]repository.UserWithStats, error) {
	query := `
		SELECT u.id, COALESCE(u.email, ''), u.first_name, u.last_name, u.profile_image_url, u.role,
		       u.password_hash, u.created_at, u.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.supplier_id = u.id),
		       (SELECT COUNT(*) FROM orders o WHERE o.customer_id = u.id)
		FROM users u
		ORDER BY u.created_at DESC, u.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users with stats: %w", err)
	}
	defer rows.Close()

	out := make([]repository.UserWithStats, 0)
	for rows.Next() {
		var s repository.UserWithStats
		if err := rows.Scan(
			&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.ProfileImageURL, &s.Role,
			&s.PasswordHash, &s.CreatedAt, &s.UpdatedAt, &s.ProductCount, &s.OrderCount,
		); err != nil {
			return nil, fmt.Errorf("scan user with stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanUser devuelve nil, nil cuando la consulta no trae filas.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.Role, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
