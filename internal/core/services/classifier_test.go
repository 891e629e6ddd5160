package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		docs *domain.ConnectorDocs
		want domain.AuthScheme
	}{
		{
			name: "manifest declares oauth",
			docs: &domain.ConnectorDocs{AuthMethod: "oauth"},
			want: domain.AuthSchemeOAuth,
		},
		{
			name: "manifest declares oauth2",
			docs: &domain.ConnectorDocs{AuthMethod: "OAuth2"},
			want: domain.AuthSchemeOAuth,
		},
		{
			name: "manifest declares bearer",
			docs: &domain.ConnectorDocs{AuthMethod: "bearer"},
			want: domain.AuthSchemeBearer,
		},
		{
			name: "manifest declares api key variants",
			docs: &domain.ConnectorDocs{AuthMethod: "api_key"},
			want: domain.AuthSchemeAPIKey,
		},
		{
			name: "manifest wins over readme markers",
			docs: &domain.ConnectorDocs{AuthMethod: "apikey", Readme: "Supports OAuth and Bearer tokens"},
			want: domain.AuthSchemeAPIKey,
		},
		{
			name: "readme oauth marker",
			docs: &domain.ConnectorDocs{Readme: "Authenticate via OAuth 2.0 authorization code flow."},
			want: domain.AuthSchemeOAuth,
		},
		{
			name: "readme bearer marker",
			docs: &domain.ConnectorDocs{Readme: "Pass a Bearer token in the Authorization header."},
			want: domain.AuthSchemeBearer,
		},
		{
			name: "oauth marker wins over bearer marker",
			docs: &domain.ConnectorDocs{Readme: "OAuth flow yields a bearer token."},
			want: domain.AuthSchemeOAuth,
		},
		{
			name: "no markers defaults to apikey",
			docs: &domain.ConnectorDocs{Readme: "Set your key and go."},
			want: domain.AuthSchemeAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.docs["probe"] = tt.docs

			meta := NewClassifier(catalog).Classify(context.Background(), "probe")
			assert.Equal(t, tt.want, meta.Scheme)
		})
	}
}

func TestClassifier_Classify_NoDocs(t *testing.T) {
	classifier := NewClassifier(newFakeCatalog())

	meta := classifier.Classify(context.Background(), "unknown")

	assert.Equal(t, domain.AuthSchemeAPIKey, meta.Scheme, "missing docs degrade to apikey")
	assert.Empty(t, meta.EnvVars)
	assert.Nil(t, meta.OAuth)
}

func TestClassifier_Classify_Deterministic(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.docs["stripe"] = &domain.ConnectorDocs{
		AuthMethod: "bearer",
		EnvVars:    []domain.EnvVarDoc{{Variable: "STRIPE_API_KEY"}},
	}
	classifier := NewClassifier(catalog)

	first := classifier.Classify(context.Background(), "stripe")
	second := classifier.Classify(context.Background(), "stripe")

	assert.Equal(t, first, second, "same docs must classify identically")
}

func TestClassifier_Classify_CarriesMetadata(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.docs["github"] = &domain.ConnectorDocs{
		AuthMethod: "oauth",
		EnvVars: []domain.EnvVarDoc{
			{Variable: "GITHUB_CLIENT_ID", Description: "OAuth app client ID"},
		},
		OAuth: &domain.OAuthEndpoints{
			AuthURL:  "https://github.com/login/oauth/authorize",
			TokenURL: "https://github.com/login/oauth/access_token",
			Scopes:   []string{"repo"},
		},
	}

	meta := NewClassifier(catalog).Classify(context.Background(), "github")

	assert.Equal(t, domain.AuthSchemeOAuth, meta.Scheme)
	assert.Len(t, meta.EnvVars, 1)
	assert.Equal(t, "GITHUB_CLIENT_ID", meta.EnvVars[0].Variable)
	assert.NotNil(t, meta.OAuth)
	assert.Equal(t, []string{"repo"}, meta.OAuth.Scopes)
}
