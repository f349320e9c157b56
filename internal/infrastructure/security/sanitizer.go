// Package security sanea el texto libre enviado por visitantes anónimos.
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer elimina todo el marcado HTML (política estricta de bluemonday) y guarda
// texto plano: las entidades que escapa la política se decodifican, el dashboard escapa al pintar.
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer construye el sanitizador.
func NewContentSanitizer() *ContentSanitizer {
	return &ContentSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize devuelve s sin etiquetas ni atributos, como texto plano.
func (s *ContentSanitizer) Sanitize(in string) string {
	return html.UnescapeString(s.policy.Sanitize(in))
}
