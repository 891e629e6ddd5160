package domain

// TokenResponse holds the provider's reply to a code exchange or refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// TokenResult is what the flow engine reports back after persisting tokens.
type TokenResult struct {
	// ExpiresAt is the new access token expiry in Unix milliseconds,
	// 0 when the provider reported no expiry.
	ExpiresAt int64 `json:"expiresAt,omitempty"`
	// Scope is the granted scope as reported by the provider.
	Scope string `json:"scope,omitempty"`
}
