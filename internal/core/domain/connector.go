package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// connectorNamePattern matches valid connector names: lowercase slugs only.
var connectorNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Connector identifies one installable integration in the catalog.
// Identity fields come from the registry and are read-only.
type Connector struct {
	// Name is the unique lowercase slug (e.g., "openai", "namecheap").
	Name string `json:"name"`
	// DisplayName is the human-readable name.
	DisplayName string `json:"displayName"`
	// Description provides a brief explanation of the connector.
	Description string `json:"description"`
	// Category groups connectors in the dashboard (e.g., "llm", "cloud", "domains").
	Category string `json:"category"`
	// Version is the installed package version, empty if not installed.
	Version string `json:"version,omitempty"`
}

// ValidateConnectorName rejects names that could escape the credential root.
// Traversal sequences and path separators fail before any filesystem touch.
func ValidateConnectorName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty connector name", ErrInvalidConnectorName)
	}
	if strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		!connectorNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidConnectorName, name)
	}
	return nil
}

// ConnectorDocs is the bundled documentation/metadata for one installed
// connector, as parsed from its package. The classifier derives the auth
// scheme from it without any network access.
type ConnectorDocs struct {
	// AuthMethod is the method declared in the manifest ("oauth", "bearer",
	// "apikey"). Empty when the manifest does not declare one; the classifier
	// then falls back to scanning the readme text.
	AuthMethod string
	// EnvVars lists the environment variables the connector recognises,
	// extracted verbatim from the documentation.
	EnvVars []EnvVarDoc
	// OAuth holds the provider endpoints for OAuth-capable connectors.
	OAuth *OAuthEndpoints
	// Readme is the raw documentation text, used as a fallback signal
	// when the manifest omits the auth method.
	Readme string
}

// EnvVarDoc is one documented environment variable.
type EnvVarDoc struct {
	Variable    string `json:"variable"`
	Description string `json:"description"`
}

// OAuthEndpoints describes a provider's OAuth 2.0 endpoints.
type OAuthEndpoints struct {
	// AuthURL is the authorization endpoint.
	AuthURL string `json:"authUrl"`
	// TokenURL is the token exchange endpoint.
	TokenURL string `json:"tokenUrl"`
	// Scopes are the scopes to request during authorization.
	Scopes []string `json:"scopes,omitempty"`
}
