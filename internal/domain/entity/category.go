package entity

import "time"

// Category agrupa productos del catálogo. Solo lectura desde la API.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}
