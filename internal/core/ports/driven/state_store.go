package driven

import "github.com/custodia-labs/connect-cli/internal/core/domain"

// StateStore holds live OAuth state nonces. Entries are single-use: Take
// removes the entry whether or not it is still valid, so a replayed nonce
// always fails closed. Expiry is checked lazily at Take time.
type StateStore interface {
	// Put registers a nonce for a started flow.
	Put(nonce string, state domain.OAuthState)

	// Take consumes the entry for nonce. It returns the entry and true
	// only when the nonce is known and within its TTL; in every other
	// case (unknown, already consumed, expired) it returns false.
	Take(nonce string) (domain.OAuthState, bool)
}
