package domain

// AuthScheme defines how a connector authenticates against its API.
type AuthScheme string

const (
	// AuthSchemeAPIKey uses a static API key sent with each request.
	AuthSchemeAPIKey AuthScheme = "apikey"
	// AuthSchemeBearer uses a static bearer token.
	AuthSchemeBearer AuthScheme = "bearer"
	// AuthSchemeOAuth uses the OAuth 2.0 authorization code flow.
	AuthSchemeOAuth AuthScheme = "oauth"
)

// AuthMetadata is the classifier's output for one connector: the derived
// scheme plus the documented environment variables and OAuth endpoints.
// It is computed from bundled documentation, never stored.
type AuthMetadata struct {
	Scheme  AuthScheme
	EnvVars []EnvVarDoc
	OAuth   *OAuthEndpoints
}

// EnvVarStatus reports whether a documented environment variable is
// currently set in the process environment.
type EnvVarStatus struct {
	Variable    string `json:"variable"`
	Description string `json:"description"`
	Set         bool   `json:"set"`
}

// AuthStatus is a point-in-time snapshot of a connector's usability.
// Computed by the status resolver, never persisted.
type AuthStatus struct {
	// Type is the connector's auth scheme.
	Type AuthScheme `json:"type"`
	// Configured reports whether the connector can make API calls now.
	// For oauth this means a live or refreshable access token exists;
	// for apikey/bearer a non-empty credential in the environment or the
	// credential file.
	Configured bool `json:"configured"`
	// TokenExpiry is the access token expiry in Unix milliseconds.
	// Zero when unknown or not applicable.
	TokenExpiry int64 `json:"tokenExpiry,omitempty"`
	// HasRefreshToken reports whether a refresh token is stored.
	HasRefreshToken bool `json:"hasRefreshToken,omitempty"`
	// EnvVars mirrors the documented environment variables with their
	// current set/unset state.
	EnvVars []EnvVarStatus `json:"envVars"`
}
