package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driving"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// Token endpoint rate limit per connector. Bounds exchange/refresh storms
// from a misbehaving browser tab.
const (
	tokenCallInterval = time.Second
	tokenCallBurst    = 5
)

// Ensure OAuthFlow implements the interface.
var _ driving.OAuthService = (*OAuthFlow)(nil)

// OAuthFlow drives the stateful OAuth 2.0 authorization code protocol:
// authorization URL construction, anti-CSRF state handling, code exchange,
// token persistence, and refresh.
type OAuthFlow struct {
	classifier *Classifier
	creds      driven.CredentialStore
	states     driven.StateStore
	exchanger  driven.TokenExchanger
	events     driven.EventStore // may be nil

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	// now is swappable for tests.
	now func() time.Time
}

// NewOAuthFlow creates a new flow engine. events may be nil; auth events
// are then dropped.
func NewOAuthFlow(
	classifier *Classifier,
	creds driven.CredentialStore,
	states driven.StateStore,
	exchanger driven.TokenExchanger,
	events driven.EventStore,
) *OAuthFlow {
	return &OAuthFlow{
		classifier: classifier,
		creds:      creds,
		states:     states,
		exchanger:  exchanger,
		events:     events,
		limiters:   make(map[string]*rate.Limiter),
		now:        time.Now,
	}
}

// StartFlow builds the provider authorization URL and registers a
// single-use state nonce. A missing client ID or missing provider
// endpoints yield domain.ErrOAuthNotConfigured: an expected gap the
// caller surfaces as guidance, not a fault.
func (f *OAuthFlow) StartFlow(ctx context.Context, name, redirectURI string) (string, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return "", err
	}

	meta := f.classifier.Classify(ctx, name)
	if meta.OAuth == nil || meta.OAuth.AuthURL == "" || meta.OAuth.TokenURL == "" {
		return "", fmt.Errorf("%w: %s declares no oauth endpoints", domain.ErrOAuthNotConfigured, name)
	}

	clientID, _, err := f.clientCredentials(ctx, name)
	if err != nil {
		return "", err
	}
	if clientID == "" {
		return "", fmt.Errorf("%w: no client id for %s", domain.ErrOAuthNotConfigured, name)
	}

	nonce, err := newStateNonce()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	verifier, err := newCodeVerifier()
	if err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	f.states.Put(nonce, domain.OAuthState{
		Connector:    name,
		RedirectURI:  redirectURI,
		CodeVerifier: verifier,
		CreatedAt:    f.now(),
	})

	cfg := oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      meta.OAuth.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  meta.OAuth.AuthURL,
			TokenURL: meta.OAuth.TokenURL,
		},
	}

	f.record(ctx, name, domain.EventOAuthStarted, "")
	logger.Debug("oauth flow started for %s", name)
	return cfg.AuthCodeURL(nonce,
		oauth2.SetAuthURLParam("code_challenge", codeChallengeS256(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// HandleCallback validates and consumes the state nonce, then exchanges
// the authorization code for tokens and persists them. The nonce is
// deleted before the exchange so a duplicate concurrent callback can
// never be accepted twice.
func (f *OAuthFlow) HandleCallback(ctx context.Context, name, code, state string) (*domain.TokenResult, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return nil, err
	}

	entry, ok := f.states.Take(state)
	if !ok || entry.Connector != name {
		f.record(ctx, name, domain.EventOAuthFailed, "state mismatch or expired")
		return nil, domain.ErrInvalidState
	}

	if !f.limiter(name).Allow() {
		return nil, fmt.Errorf("%w: token endpoint calls for %s", domain.ErrRateLimited, name)
	}

	meta := f.classifier.Classify(ctx, name)
	if meta.OAuth == nil || meta.OAuth.TokenURL == "" {
		return nil, fmt.Errorf("%w: %s declares no token endpoint", domain.ErrOAuthNotConfigured, name)
	}
	clientID, clientSecret, err := f.clientCredentials(ctx, name)
	if err != nil {
		return nil, err
	}

	resp, err := f.exchanger.Exchange(ctx, driven.ExchangeRequest{
		TokenURL:     meta.OAuth.TokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Code:         code,
		RedirectURI:  entry.RedirectURI,
		CodeVerifier: entry.CodeVerifier,
	})
	if err != nil {
		// Authorization codes are single-use by provider contract; a
		// replayed code fails at the provider and is surfaced, not retried.
		f.record(ctx, name, domain.EventOAuthFailed, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchangeFailed, err)
	}

	result, err := f.persistTokens(ctx, name, resp)
	if err != nil {
		return nil, err
	}
	f.record(ctx, name, domain.EventOAuthCompleted, "")
	return result, nil
}

// Refresh exchanges the stored refresh token for a new access token.
// When the provider returns no new refresh token, the stored one is kept -
// a documented assumption, not a guaranteed cross-provider contract.
func (f *OAuthFlow) Refresh(ctx context.Context, name string) (*domain.TokenResult, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return nil, err
	}

	rec, err := f.creds.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	refreshToken := rec.RefreshToken()
	if refreshToken == "" {
		return nil, domain.ErrNoRefreshToken
	}

	meta := f.classifier.Classify(ctx, name)
	if meta.OAuth == nil || meta.OAuth.TokenURL == "" {
		return nil, fmt.Errorf("%w: %s declares no token endpoint", domain.ErrOAuthNotConfigured, name)
	}
	clientID, clientSecret, err := f.clientCredentials(ctx, name)
	if err != nil {
		return nil, err
	}

	if !f.limiter(name).Allow() {
		return nil, fmt.Errorf("%w: token endpoint calls for %s", domain.ErrRateLimited, name)
	}

	resp, err := f.exchanger.Refresh(ctx, driven.RefreshRequest{
		TokenURL:     meta.OAuth.TokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
	if err != nil {
		f.record(ctx, name, domain.EventRefreshFailed, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}

	result, err := f.persistTokens(ctx, name, resp)
	if err != nil {
		return nil, err
	}
	f.record(ctx, name, domain.EventTokenRefreshed, "")
	logger.Debug("refreshed token for %s, expires at %d", name, result.ExpiresAt)
	return result, nil
}

// persistTokens merges the provider response into the credential record.
// An absent refresh token in resp is simply not written, so a previously
// stored one survives the merge.
func (f *OAuthFlow) persistTokens(ctx context.Context, name string, resp *domain.TokenResponse) (*domain.TokenResult, error) {
	patch := domain.CredentialRecord{
		domain.FieldAccessToken: resp.AccessToken,
	}
	if resp.RefreshToken != "" {
		patch[domain.FieldRefreshToken] = resp.RefreshToken
	}

	result := &domain.TokenResult{Scope: resp.Scope}
	if resp.ExpiresIn > 0 {
		result.ExpiresAt = f.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UnixMilli()
		patch[domain.FieldTokenExpiresAt] = result.ExpiresAt
	}
	if resp.Scope != "" {
		patch[domain.FieldScope] = resp.Scope
	}

	if err := f.creds.Save(ctx, name, patch); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}
	return result, nil
}

// clientCredentials resolves the OAuth client ID and secret with
// environment-over-file precedence.
func (f *OAuthFlow) clientCredentials(ctx context.Context, name string) (string, string, error) {
	rec, err := f.creds.Load(ctx, name)
	if err != nil {
		return "", "", err
	}
	prefix := EnvPrefix(name)
	clientID := os.Getenv(prefix + "_CLIENT_ID")
	if clientID == "" {
		clientID = rec.GetString(domain.FieldClientID)
	}
	clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")
	if clientSecret == "" {
		clientSecret = rec.GetString(domain.FieldClientSecret)
	}
	return clientID, clientSecret, nil
}

func (f *OAuthFlow) limiter(name string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limiters[name]
	if !ok {
		l = rate.NewLimiter(rate.Every(tokenCallInterval), tokenCallBurst)
		f.limiters[name] = l
	}
	return l
}

func (f *OAuthFlow) record(ctx context.Context, name string, kind domain.AuthEventKind, detail string) {
	if f.events == nil {
		return
	}
	if err := appendEvent(ctx, f.events, name, kind, detail); err != nil {
		logger.Warn("append auth event: %v", err)
	}
}
