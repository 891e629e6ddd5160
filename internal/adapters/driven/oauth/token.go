// Package oauth provides the token endpoint client for external providers.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
)

// Ensure Exchanger implements the interface.
var _ driven.TokenExchanger = (*Exchanger)(nil)

// Exchanger performs authorization code and refresh token grants against a
// provider's token endpoint. It never retries: a consumed authorization
// code cannot succeed a second time, so failures are surfaced as-is.
type Exchanger struct {
	client *http.Client
}

// NewExchanger creates a token exchanger with a 30 second request timeout.
func NewExchanger() *Exchanger {
	return &Exchanger{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Exchange trades an authorization code for tokens.
func (e *Exchanger) Exchange(ctx context.Context, req driven.ExchangeRequest) (*domain.TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", req.ClientID)
	data.Set("client_secret", req.ClientSecret)
	data.Set("code", req.Code)
	if req.RedirectURI != "" {
		data.Set("redirect_uri", req.RedirectURI)
	}
	if req.CodeVerifier != "" {
		data.Set("code_verifier", req.CodeVerifier)
	}
	return e.post(ctx, req.TokenURL, data)
}

// Refresh trades a refresh token for a new access token.
func (e *Exchanger) Refresh(ctx context.Context, req driven.RefreshRequest) (*domain.TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", req.RefreshToken)
	data.Set("client_id", req.ClientID)
	data.Set("client_secret", req.ClientSecret)
	return e.post(ctx, req.TokenURL, data)
}

func (e *Exchanger) post(ctx context.Context, tokenURL string, data url.Values) (*domain.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("token error: %s - %s", errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenResp domain.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	return &tokenResp, nil
}
