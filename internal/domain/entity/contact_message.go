package entity

import "time"

// Estados del mensaje de contacto: unread (inicial) -> read.
const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

// IsValidMessageStatus indica si s es un estado admitido.
func IsValidMessageStatus(s string) bool {
	return s == MessageStatusUnread || s == MessageStatusRead
}

// ContactMessage mensaje enviado por un visitante anónimo desde el formulario público.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}
