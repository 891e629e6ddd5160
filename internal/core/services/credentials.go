package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driving"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// Ensure CredentialService implements the interface.
var _ driving.CredentialService = (*CredentialService)(nil)

// CredentialService manages stored keys and profiles for connectors.
type CredentialService struct {
	classifier *Classifier
	creds      driven.CredentialStore
	events     driven.EventStore // may be nil
}

// NewCredentialService creates a new credential service.
func NewCredentialService(classifier *Classifier, creds driven.CredentialStore, events driven.EventStore) *CredentialService {
	return &CredentialService{
		classifier: classifier,
		creds:      creds,
		events:     events,
	}
}

// SaveKey stores a key/token under field. An empty field selects the
// scheme-appropriate default.
func (s *CredentialService) SaveKey(ctx context.Context, name, field, key string) error {
	if err := domain.ValidateConnectorName(name); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}

	if field == "" {
		switch s.classifier.Classify(ctx, name).Scheme {
		case domain.AuthSchemeBearer:
			field = domain.FieldBearerToken
		default:
			field = domain.FieldAPIKey
		}
	}

	if err := s.creds.Save(ctx, name, domain.CredentialRecord{field: key}); err != nil {
		return err
	}
	s.record(ctx, name, domain.EventKeySaved, field)
	return nil
}

// Record returns the active profile's credential record.
func (s *CredentialService) Record(ctx context.Context, name string) (domain.CredentialRecord, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return nil, err
	}
	return s.creds.Load(ctx, name)
}

// Clear removes the active profile's stored credentials.
func (s *CredentialService) Clear(ctx context.Context, name string) error {
	if err := domain.ValidateConnectorName(name); err != nil {
		return err
	}
	if err := s.creds.Clear(ctx, name); err != nil {
		return err
	}
	s.record(ctx, name, domain.EventCredsCleared, "")
	return nil
}

// Profiles lists profile names and the active one for a connector.
func (s *CredentialService) Profiles(ctx context.Context, name string) ([]string, string, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return nil, "", err
	}
	profiles, err := s.creds.Profiles(ctx, name)
	if err != nil {
		return nil, "", err
	}
	return profiles, s.creds.CurrentProfile(name), nil
}

// UseProfile switches the active profile.
func (s *CredentialService) UseProfile(ctx context.Context, name, profile string) error {
	if err := domain.ValidateConnectorName(name); err != nil {
		return err
	}
	return s.creds.UseProfile(ctx, name, profile)
}

func (s *CredentialService) record(ctx context.Context, name string, kind domain.AuthEventKind, detail string) {
	if s.events == nil {
		return
	}
	if err := appendEvent(ctx, s.events, name, kind, detail); err != nil {
		logger.Warn("append auth event: %v", err)
	}
}

// appendEvent writes one auth event with a fresh UUID.
func appendEvent(ctx context.Context, store driven.EventStore, name string, kind domain.AuthEventKind, detail string) error {
	return store.Append(ctx, domain.AuthEvent{
		ID:        uuid.NewString(),
		Connector: name,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}
