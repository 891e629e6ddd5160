package domain

import (
	"time"
)

// Well-known CredentialRecord field names. Records are schema-free; these
// are the conventional keys shared by connectors.
const (
	FieldAPIKey         = "apiKey"
	FieldBearerToken    = "bearerToken"
	FieldClientID       = "clientId"
	FieldClientSecret   = "clientSecret"
	FieldAccessToken    = "accessToken"
	FieldRefreshToken   = "refreshToken"
	FieldTokenExpiresAt = "tokenExpiresAt"
	FieldScope          = "scope"
)

// CredentialRecord is one connector's stored credentials: a schema-free
// JSON object persisted per profile. A missing or corrupt file loads as an
// empty record, never as an error.
type CredentialRecord map[string]any

// GetString returns the string value for key, or "" when absent or not a
// string.
func (r CredentialRecord) GetString(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// AccessToken returns the stored OAuth access token, if any.
func (r CredentialRecord) AccessToken() string {
	return r.GetString(FieldAccessToken)
}

// RefreshToken returns the stored OAuth refresh token, if any.
func (r CredentialRecord) RefreshToken() string {
	return r.GetString(FieldRefreshToken)
}

// TokenExpiresAt returns the access token expiry in Unix milliseconds,
// or 0 when no expiry is recorded. JSON decoding yields float64 for
// numbers; records patched in-process may hold int64.
func (r CredentialRecord) TokenExpiresAt() int64 {
	if r == nil {
		return 0
	}
	switch v := r[FieldTokenExpiresAt].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// TokenExpired reports whether a recorded expiry has passed.
// Records without an expiry never count as expired.
func (r CredentialRecord) TokenExpired(now time.Time) bool {
	exp := r.TokenExpiresAt()
	if exp == 0 {
		return false
	}
	return exp <= now.UnixMilli()
}

// HasRefreshToken reports whether a refresh token is stored.
func (r CredentialRecord) HasRefreshToken() bool {
	return r.RefreshToken() != ""
}

// Merge returns a copy of r with every key from patch applied on top.
// Keys absent from patch are preserved (shallow merge).
func (r CredentialRecord) Merge(patch CredentialRecord) CredentialRecord {
	merged := make(CredentialRecord, len(r)+len(patch))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
