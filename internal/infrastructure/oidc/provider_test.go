package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/marketplace-backoffice/pkg/config"
)

func TestValidateConfig(t *testing.T) {
	ok := config.OIDCConfig{IssuerURL: "https://issuer.example.com", ClientID: "bo", RedirectURL: "https://bo.example.com/api/callback"}

	tests := []struct {
		name    string
		mutate  func(c *config.OIDCConfig)
		wantErr string
	}{
		{name: "válida", mutate: func(*config.OIDCConfig) {}},
		{name: "sin issuer", mutate: func(c *config.OIDCConfig) { c.IssuerURL = "" }, wantErr: "issuer_url"},
		{name: "sin client_id", mutate: func(c *config.OIDCConfig) { c.ClientID = "" }, wantErr: "client_id"},
		{name: "sin redirect", mutate: func(c *config.OIDCConfig) { c.RedirectURL = "" }, wantErr: "redirect_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ok
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIdentityFromClaims(t *testing.T) {
	id := identityFromClaims("sub-1", map[string]any{
		"email":             "ana@example.com",
		"first_name":        "Ana",
		"family_name":       "Pérez",
		"picture":           "https://img.example.com/a.png",
		"profile_image_url": "",
	})
	assert.Equal(t, "sub-1", id.Subject)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.Equal(t, "Ana", id.FirstName)
	assert.Equal(t, "Pérez", id.LastName)
	assert.Equal(t, "https://img.example.com/a.png", id.ProfileImageURL, "picture como respaldo")
}

func TestIdentityFromClaims_SubjectDesdeClaims(t *testing.T) {
	id := identityFromClaims("", map[string]any{"sub": "sub-2", "given_name": "Leo"})
	assert.Equal(t, "sub-2", id.Subject)
	assert.Equal(t, "Leo", id.FirstName)
	assert.Empty(t, id.Email)
}
