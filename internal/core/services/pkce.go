package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// Byte lengths before base64url encoding. 64 verifier bytes encode to 86
// characters, inside the 43-128 window RFC 7636 allows.
const (
	verifierBytes   = 64
	stateNonceBytes = 32
)

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// newCodeVerifier returns a fresh PKCE code verifier.
func newCodeVerifier() (string, error) {
	return randomToken(verifierBytes)
}

// codeChallengeS256 derives the S256 challenge sent with the
// authorization request.
func codeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// newStateNonce returns the single-use CSRF state parameter.
func newStateNonce() (string, error) {
	return randomToken(stateNonceBytes)
}
