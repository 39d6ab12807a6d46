package oidc

// Package oidc verifies backend-issued access tokens against a JWKS endpoint
// before the session store accepts them.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/skillhub/skills-dashboard/internal/ports"
)

// Verifier checks signature, issuer, audience and expiry of a JWT access token.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// VerifierConfig holds configuration for the token verifier.
type VerifierConfig struct {
	JWKSURL    string
	Issuer     string
	Audience   string
	HTTPClient *http.Client // Optional, defaults to a client with a 10s timeout
	Now        func() time.Time
}

// NewVerifier creates a verifier backed by a remote key set.
// Keys are fetched lazily on first use and refreshed on unknown key ids.
func NewVerifier(ctx context.Context, cfg VerifierConfig) (*Verifier, error) {
	jwksURL := strings.TrimSpace(cfg.JWKSURL)
	if jwksURL == "" {
		return nil, errors.New("jwks URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	// The key set keeps this context for background refreshes.
	keyCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, httpClient)
	keySet := gooidc.NewRemoteKeySet(keyCtx, jwksURL)

	issuer := strings.TrimSpace(cfg.Issuer)
	audience := strings.TrimSpace(cfg.Audience)
	v := gooidc.NewVerifier(issuer, keySet, &gooidc.Config{
		ClientID:          audience,
		SkipClientIDCheck: audience == "",
		SkipIssuerCheck:   issuer == "",
		Now:               cfg.Now,
	})
	return &Verifier{verifier: v}, nil
}

// Verify returns an error when the token is malformed, expired or not signed by a trusted key.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	if _, err := v.verifier.Verify(ctx, token); err != nil {
		return fmt.Errorf("verify access token: %w", err)
	}
	return nil
}
