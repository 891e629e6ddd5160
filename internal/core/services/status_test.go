package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

func newStatusFixture(t *testing.T) (*StatusService, *fakeCatalog, *fakeCredStore) {
	t.Helper()
	catalog := newFakeCatalog()
	creds := newFakeCredStore()
	svc := NewStatusService(NewClassifier(catalog), creds, catalog)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, catalog, creds
}

func TestStatusService_GetAuthStatus_APIKey(t *testing.T) {
	t.Run("not configured without key", func(t *testing.T) {
		svc, catalog, _ := newStatusFixture(t)
		catalog.docs["openai"] = &domain.ConnectorDocs{AuthMethod: "apikey"}

		status, err := svc.GetAuthStatus(context.Background(), "openai")
		require.NoError(t, err)
		assert.Equal(t, domain.AuthSchemeAPIKey, status.Type)
		assert.False(t, status.Configured)
	})

	t.Run("configured via stored key", func(t *testing.T) {
		svc, catalog, creds := newStatusFixture(t)
		catalog.docs["openai"] = &domain.ConnectorDocs{AuthMethod: "apikey"}
		require.NoError(t, creds.Save(context.Background(), "openai",
			domain.CredentialRecord{domain.FieldAPIKey: "sk-live"}))

		status, err := svc.GetAuthStatus(context.Background(), "openai")
		require.NoError(t, err)
		assert.True(t, status.Configured)
	})

	t.Run("configured via documented env var", func(t *testing.T) {
		svc, catalog, _ := newStatusFixture(t)
		catalog.docs["openai"] = &domain.ConnectorDocs{
			AuthMethod: "apikey",
			EnvVars:    []domain.EnvVarDoc{{Variable: "OPENAI_API_KEY"}},
		}
		t.Setenv("OPENAI_API_KEY", "sk-env")

		status, err := svc.GetAuthStatus(context.Background(), "openai")
		require.NoError(t, err)
		assert.True(t, status.Configured)
		require.Len(t, status.EnvVars, 1)
		assert.True(t, status.EnvVars[0].Set)
	})
}

func TestStatusService_GetAuthStatus_OAuth(t *testing.T) {
	oauthDocs := &domain.ConnectorDocs{
		AuthMethod: "oauth",
		OAuth: &domain.OAuthEndpoints{
			AuthURL:  "https://example.com/authorize",
			TokenURL: "https://example.com/token",
		},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		record         domain.CredentialRecord
		wantConfigured bool
	}{
		{
			name:           "no tokens",
			record:         nil,
			wantConfigured: false,
		},
		{
			name: "live access token",
			record: domain.CredentialRecord{
				domain.FieldAccessToken:    "at",
				domain.FieldTokenExpiresAt: now.Add(time.Hour).UnixMilli(),
			},
			wantConfigured: true,
		},
		{
			name: "expired without refresh token",
			record: domain.CredentialRecord{
				domain.FieldAccessToken:    "at",
				domain.FieldTokenExpiresAt: now.Add(-time.Hour).UnixMilli(),
			},
			wantConfigured: false,
		},
		{
			name: "expired but refreshable",
			record: domain.CredentialRecord{
				domain.FieldAccessToken:    "at",
				domain.FieldRefreshToken:   "rt",
				domain.FieldTokenExpiresAt: now.Add(-time.Hour).UnixMilli(),
			},
			wantConfigured: true,
		},
		{
			name: "access token without expiry",
			record: domain.CredentialRecord{
				domain.FieldAccessToken: "at",
			},
			wantConfigured: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, catalog, creds := newStatusFixture(t)
			catalog.docs["github"] = oauthDocs
			if tt.record != nil {
				require.NoError(t, creds.Save(context.Background(), "github", tt.record))
			}

			status, err := svc.GetAuthStatus(context.Background(), "github")
			require.NoError(t, err)
			assert.Equal(t, domain.AuthSchemeOAuth, status.Type)
			assert.Equal(t, tt.wantConfigured, status.Configured)
		})
	}
}

func TestStatusService_GetAuthStatus_InvalidName(t *testing.T) {
	svc, _, _ := newStatusFixture(t)

	_, err := svc.GetAuthStatus(context.Background(), "../escape")
	assert.ErrorIs(t, err, domain.ErrInvalidConnectorName)
}

func TestStatusService_ListConnectors(t *testing.T) {
	svc, catalog, creds := newStatusFixture(t)
	catalog.connectors = []domain.Connector{
		{Name: "openai", Category: "llm"},
		{Name: "stripe", Category: "payments"},
	}
	catalog.installed["openai"] = true
	catalog.docs["openai"] = &domain.ConnectorDocs{AuthMethod: "apikey"}
	require.NoError(t, creds.Save(context.Background(), "openai",
		domain.CredentialRecord{domain.FieldAPIKey: "sk"}))

	result, err := svc.ListConnectors(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.True(t, result[0].Installed)
	require.NotNil(t, result[0].Auth, "installed connectors carry a status")
	assert.True(t, result[0].Auth.Configured)

	assert.False(t, result[1].Installed)
	assert.Nil(t, result[1].Auth, "uninstalled connectors skip the status lookup")
}

func TestStatusService_GetConnector(t *testing.T) {
	svc, catalog, _ := newStatusFixture(t)
	catalog.connectors = []domain.Connector{{Name: "openai"}}

	got, err := svc.GetConnector(context.Background(), "openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", got.Name)

	_, err = svc.GetConnector(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnvPrefix(t *testing.T) {
	assert.Equal(t, "GOOGLE_DRIVE", EnvPrefix("google-drive"))
	assert.Equal(t, "OPENAI", EnvPrefix("openai"))
	assert.Equal(t, "S3", EnvPrefix("s3"))
}
