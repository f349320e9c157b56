package dto

import "time"

// CreateContactMessageRequest entrada del formulario público de contacto.
type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,min=1,max=300"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// UpdateMessageStatusRequest entrada de PUT /api/admin/messages/:id/status.
type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read"`
}

// ContactMessageResponse salida de un mensaje de contacto.
type ContactMessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
