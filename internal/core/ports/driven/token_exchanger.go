package driven

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// ExchangeRequest carries the parameters for an authorization code exchange.
type ExchangeRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
	CodeVerifier string
}

// RefreshRequest carries the parameters for a refresh token grant.
type RefreshRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TokenExchanger performs the outbound HTTPS calls against a provider's
// token endpoint. Implementations must not retry: authorization codes are
// single-use by provider contract, so a failed exchange is surfaced as-is.
type TokenExchanger interface {
	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, req ExchangeRequest) (*domain.TokenResponse, error)

	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, req RefreshRequest) (*domain.TokenResponse, error)
}
