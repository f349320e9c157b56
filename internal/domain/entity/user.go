package entity

import "time"

// Roles válidos para User. El rol se asigna fuera de banda (cmd/setrole), nunca por autoservicio.
const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
	RoleCustomer = "customer"
)

// IsValidRole indica si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleCustomer:
		return true
	}
	return false
}

// User representa una identidad autenticada del back office.
// El ID es inmutable: uuid para registros locales o el "sub" del proveedor OIDC.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            string
	PasswordHash    string // vacío para usuarios federados
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasRole indica si el rol del usuario está en la lista permitida.
func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
