package domain

import "time"

// AuthEventKind identifies one kind of auth lifecycle event.
type AuthEventKind string

const (
	EventKeySaved       AuthEventKind = "key_saved"
	EventOAuthStarted   AuthEventKind = "oauth_started"
	EventOAuthCompleted AuthEventKind = "oauth_completed"
	EventOAuthFailed    AuthEventKind = "oauth_failed"
	EventTokenRefreshed AuthEventKind = "token_refreshed"
	EventRefreshFailed  AuthEventKind = "refresh_failed"
	EventCredsCleared   AuthEventKind = "credentials_cleared"
)

// AuthEvent is one entry in the auth activity log.
type AuthEvent struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// Connector is the connector the event relates to.
	Connector string `json:"connector"`
	// Kind classifies the event.
	Kind AuthEventKind `json:"kind"`
	// Detail carries an optional human-readable note (e.g., failure reason).
	Detail string `json:"detail,omitempty"`
	// CreatedAt is when the event occurred.
	CreatedAt time.Time `json:"createdAt"`
}
