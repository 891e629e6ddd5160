package driving

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// OAuthService drives the OAuth 2.0 authorization code flow for connectors.
type OAuthService interface {
	// StartFlow builds the provider authorization URL and registers a
	// single-use state nonce. Returns domain.ErrOAuthNotConfigured when
	// client credentials or provider endpoints are missing - an expected
	// configuration gap, not a fault.
	StartFlow(ctx context.Context, name, redirectURI string) (string, error)

	// HandleCallback validates and consumes the state nonce, exchanges the
	// authorization code for tokens, and persists them. Returns
	// domain.ErrInvalidState on nonce mismatch or expiry without touching
	// the token endpoint.
	HandleCallback(ctx context.Context, name, code, state string) (*domain.TokenResult, error)

	// Refresh exchanges the stored refresh token for a new access token
	// and persists the result. Returns domain.ErrNoRefreshToken when none
	// is stored. Safe to retry: no single-use artifact is consumed.
	Refresh(ctx context.Context, name string) (*domain.TokenResult, error)
}
