package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

func newCredFixture(t *testing.T) (*CredentialService, *fakeCatalog, *fakeCredStore, *fakeEventStore) {
	t.Helper()
	catalog := newFakeCatalog()
	creds := newFakeCredStore()
	events := &fakeEventStore{}
	svc := NewCredentialService(NewClassifier(catalog), creds, events)
	return svc, catalog, creds, events
}

func TestCredentialService_SaveKey(t *testing.T) {
	t.Run("default field for apikey scheme", func(t *testing.T) {
		svc, catalog, creds, events := newCredFixture(t)
		catalog.docs["openai"] = &domain.ConnectorDocs{AuthMethod: "apikey"}

		require.NoError(t, svc.SaveKey(context.Background(), "openai", "", "sk-test"))

		rec, _ := creds.Load(context.Background(), "openai")
		assert.Equal(t, "sk-test", rec.GetString(domain.FieldAPIKey))
		assert.Contains(t, events.kinds(), domain.EventKeySaved)
	})

	t.Run("default field for bearer scheme", func(t *testing.T) {
		svc, catalog, creds, _ := newCredFixture(t)
		catalog.docs["stripe"] = &domain.ConnectorDocs{AuthMethod: "bearer"}

		require.NoError(t, svc.SaveKey(context.Background(), "stripe", "", "tok-test"))

		rec, _ := creds.Load(context.Background(), "stripe")
		assert.Equal(t, "tok-test", rec.GetString(domain.FieldBearerToken))
	})

	t.Run("explicit field wins", func(t *testing.T) {
		svc, catalog, creds, _ := newCredFixture(t)
		catalog.docs["github"] = &domain.ConnectorDocs{AuthMethod: "oauth"}

		require.NoError(t, svc.SaveKey(context.Background(), "github", domain.FieldClientSecret, "s3cret"))

		rec, _ := creds.Load(context.Background(), "github")
		assert.Equal(t, "s3cret", rec.GetString(domain.FieldClientSecret))
	})

	t.Run("save merges with existing record", func(t *testing.T) {
		svc, catalog, creds, _ := newCredFixture(t)
		catalog.docs["github"] = &domain.ConnectorDocs{AuthMethod: "oauth"}
		require.NoError(t, creds.Save(context.Background(), "github",
			domain.CredentialRecord{domain.FieldClientID: "cid"}))

		require.NoError(t, svc.SaveKey(context.Background(), "github", domain.FieldClientSecret, "cs"))

		rec, _ := creds.Load(context.Background(), "github")
		assert.Equal(t, "cid", rec.GetString(domain.FieldClientID))
		assert.Equal(t, "cs", rec.GetString(domain.FieldClientSecret))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		svc, _, _, _ := newCredFixture(t)

		err := svc.SaveKey(context.Background(), "openai", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		svc, _, _, _ := newCredFixture(t)

		err := svc.SaveKey(context.Background(), "../etc", "", "sk")
		assert.ErrorIs(t, err, domain.ErrInvalidConnectorName)
	})
}

func TestCredentialService_Clear(t *testing.T) {
	svc, catalog, creds, events := newCredFixture(t)
	catalog.docs["openai"] = &domain.ConnectorDocs{AuthMethod: "apikey"}
	require.NoError(t, creds.Save(context.Background(), "openai",
		domain.CredentialRecord{domain.FieldAPIKey: "sk"}))

	require.NoError(t, svc.Clear(context.Background(), "openai"))

	rec, _ := creds.Load(context.Background(), "openai")
	assert.Empty(t, rec)
	assert.Contains(t, events.kinds(), domain.EventCredsCleared)
}
