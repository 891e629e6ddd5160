package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
)

// Classifier derives a connector's auth scheme from its bundled
// documentation. Classification is deterministic given the same
// documentation content: no network calls, no side effects. Connectors
// without documentation default to apikey with an empty env-var list.
type Classifier struct {
	catalog driven.Catalog
}

// NewClassifier creates a classifier backed by the given catalog.
func NewClassifier(catalog driven.Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// Classify returns the auth metadata for one connector. It never fails:
// absent or unreadable documentation degrades to the apikey default.
func (c *Classifier) Classify(ctx context.Context, name string) domain.AuthMetadata {
	docs, err := c.catalog.Docs(ctx, name)
	if err != nil || docs == nil {
		return domain.AuthMetadata{Scheme: domain.AuthSchemeAPIKey}
	}
	return domain.AuthMetadata{
		Scheme:  schemeFromDocs(docs),
		EnvVars: docs.EnvVars,
		OAuth:   docs.OAuth,
	}
}

// schemeFromDocs applies the decision order: an explicit manifest method
// wins, then documentation markers, then the apikey default.
func schemeFromDocs(docs *domain.ConnectorDocs) domain.AuthScheme {
	switch strings.ToLower(strings.TrimSpace(docs.AuthMethod)) {
	case "oauth", "oauth2":
		return domain.AuthSchemeOAuth
	case "bearer":
		return domain.AuthSchemeBearer
	case "apikey", "api_key", "api-key":
		return domain.AuthSchemeAPIKey
	}

	readme := strings.ToLower(docs.Readme)
	if strings.Contains(readme, "oauth") {
		return domain.AuthSchemeOAuth
	}
	if strings.Contains(readme, "bearer") {
		return domain.AuthSchemeBearer
	}
	return domain.AuthSchemeAPIKey
}
