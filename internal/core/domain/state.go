package domain

import "time"

// OAuthStateTTL bounds how long an issued state nonce stays redeemable.
// Expiry is checked lazily when the callback presents the nonce.
const OAuthStateTTL = 10 * time.Minute

// OAuthState binds an authorization request to its eventual callback.
// Entries are ephemeral, in-memory, keyed by a random nonce, and consumed
// exactly once: either on successful validation or at TTL expiry.
type OAuthState struct {
	// Connector is the connector the flow was started for. The callback
	// must present the nonce for this exact connector.
	Connector string
	// RedirectURI is the redirect used when the flow started. The code
	// exchange must present the same value to the provider.
	RedirectURI string
	// CodeVerifier is the PKCE verifier whose S256 challenge was sent
	// with the authorization request.
	CodeVerifier string
	// CreatedAt is when the authorization URL was issued.
	CreatedAt time.Time
}

// Expired reports whether the entry is past its TTL at the given time.
func (s OAuthState) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > OAuthStateTTL
}
