package dto

import "time"

// RegisterRequest entrada para registro local. El rol inicial es siempre customer.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin hash de password).
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AdminUserResponse usuario con contadores para el listado de administración.
type AdminUserResponse struct {
	UserResponse
	ProductCount int `json:"productCount"`
	OrderCount   int `json:"orderCount"`
}

// LoginResponse salida del login: token Bearer y usuario.
// SessionID no se serializa; el handler lo envía como cookie HTTP-only.
type LoginResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	SessionID string       `json:"-"`
}
