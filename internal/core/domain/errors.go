package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConnectorName indicates a connector name that is not a
	// lowercase slug. Rejected before any filesystem or lookup touch.
	ErrInvalidConnectorName = errors.New("invalid connector name")

	// ErrNotInstalled indicates the connector exists in the catalog but is
	// not installed locally.
	ErrNotInstalled = errors.New("connector not installed")

	// Authentication errors.

	// ErrOAuthNotConfigured indicates an OAuth flow cannot start because
	// client credentials or provider endpoints are missing. This is an
	// expected configuration gap, not a fault.
	ErrOAuthNotConfigured = errors.New("oauth not configured")

	// ErrInvalidState indicates the callback state nonce is unknown,
	// already consumed, expired, or bound to a different connector.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrNoRefreshToken indicates a refresh was requested but no refresh
	// token is stored. The full authorization flow must be redone.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrTokenExchangeFailed indicates the provider rejected the
	// authorization code exchange.
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// ErrTokenRefreshFailed indicates the provider rejected the refresh.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrRateLimited indicates too many token endpoint calls in a short
	// window for one connector.
	ErrRateLimited = errors.New("rate limited")
)
