// Package oidc implementa el login federado (authorization code flow) contra un proveedor OpenID Connect.
package oidc

import (
	"context"
	"errors"
	"fmt"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/auth"
	"github.com/jhoicas/marketplace-backoffice/pkg/config"
)

var scopes = []string{gooidc.ScopeOpenID, "profile", "email"}

// Provider cliente OIDC: genera la URL de autorización y verifica el id_token del callback.
type Provider struct {
	verifier     *gooidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

// ValidateConfig comprueba los campos obligatorios antes de hacer discovery.
func ValidateConfig(cfg config.OIDCConfig) error {
	switch {
	case cfg.IssuerURL == "":
		return errors.New("oidc: issuer_url es obligatorio")
	case cfg.ClientID == "":
		return errors.New("oidc: client_id es obligatorio")
	case cfg.RedirectURL == "":
		return errors.New("oidc: redirect_url es obligatorio")
	}
	return nil
}

// New hace discovery del emisor y prepara verificador y configuración OAuth2.
func New(ctx context.Context, cfg config.OIDCConfig) (*Provider, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	provider, err := gooidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc: discovery: %w", err)
	}
	return &Provider{
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
		},
	}, nil
}

// AuthCodeURL URL del proveedor a la que se redirige el navegador.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// Exchange canjea el código por tokens, verifica el id_token y extrae la identidad.
func (p *Provider) Exchange(ctx context.Context, code string) (auth.FederatedIdentity, error) {
	if code == "" {
		return auth.FederatedIdentity{}, errors.New("oidc: falta el código de autorización")
	}
	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return auth.FederatedIdentity{}, fmt.Errorf("oidc: canje de código: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return auth.FederatedIdentity{}, errors.New("oidc: respuesta sin id_token")
	}
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return auth.FederatedIdentity{}, fmt.Errorf("oidc: id_token inválido: %w", err)
	}
	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return auth.FederatedIdentity{}, fmt.Errorf("oidc: claims: %w", err)
	}
	return identityFromClaims(idToken.Subject, claims), nil
}

// identityFromClaims acepta tanto los nombres estándar (given_name, picture) como los
// alternativos que emiten algunos proveedores (first_name, profile_image_url).
func identityFromClaims(subject string, claims map[string]any) auth.FederatedIdentity {
	if subject == "" {
		subject = firstString(claims, "sub")
	}
	return auth.FederatedIdentity{
		Subject:         subject,
		Email:           firstString(claims, "email"),
		FirstName:       firstString(claims, "first_name", "given_name"),
		LastName:        firstString(claims, "last_name", "family_name"),
		ProfileImageURL: firstString(claims, "profile_image_url", "picture"),
	}
}

func firstString(claims map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
