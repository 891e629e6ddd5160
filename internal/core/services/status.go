package services

import (
	"context"
	"os"
	"time"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driving"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService combines the classifier, the credential store, and the
// process environment into point-in-time auth status snapshots.
type StatusService struct {
	classifier *Classifier
	creds      driven.CredentialStore
	catalog    driven.Catalog

	// now is swappable for tests.
	now func() time.Time
}

// NewStatusService creates a new status resolver.
func NewStatusService(classifier *Classifier, creds driven.CredentialStore, catalog driven.Catalog) *StatusService {
	return &StatusService{
		classifier: classifier,
		creds:      creds,
		catalog:    catalog,
		now:        time.Now,
	}
}

// GetAuthStatus returns the status snapshot for one connector.
// The resolver never fails for a valid name: an unreachable or malformed
// record degrades to configured:false.
func (s *StatusService) GetAuthStatus(ctx context.Context, name string) (domain.AuthStatus, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return domain.AuthStatus{}, err
	}

	meta := s.classifier.Classify(ctx, name)

	rec, err := s.creds.Load(ctx, name)
	if err != nil {
		logger.Warn("load credentials for %s: %v", name, err)
		rec = domain.CredentialRecord{}
	}

	status := domain.AuthStatus{
		Type:    meta.Scheme,
		EnvVars: envVarStatuses(meta.EnvVars),
	}

	switch meta.Scheme {
	case domain.AuthSchemeOAuth:
		status.TokenExpiry = rec.TokenExpiresAt()
		status.HasRefreshToken = rec.HasRefreshToken()
		// A present refresh token keeps the status usable even when the
		// access token has expired: the engine refreshes on demand.
		status.Configured = rec.AccessToken() != "" &&
			(!rec.TokenExpired(s.now()) || rec.HasRefreshToken())
	case domain.AuthSchemeBearer:
		status.Configured = LookupCredential(rec, meta.EnvVars, domain.FieldBearerToken) != "" ||
			rec.GetString(domain.FieldAPIKey) != ""
	default:
		status.Configured = LookupCredential(rec, meta.EnvVars, domain.FieldAPIKey) != ""
	}

	return status, nil
}

// ListConnectors returns all catalog connectors merged with install flags.
// Only installed connectors get a live status lookup.
func (s *StatusService) ListConnectors(ctx context.Context) ([]driving.ConnectorStatus, error) {
	connectors, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]driving.ConnectorStatus, 0, len(connectors))
	for _, c := range connectors {
		cs := driving.ConnectorStatus{
			Connector: c,
			Installed: s.catalog.Installed(c.Name),
		}
		if cs.Installed {
			status, err := s.GetAuthStatus(ctx, c.Name)
			if err == nil {
				cs.Auth = &status
			}
		}
		result = append(result, cs)
	}
	return result, nil
}

// GetConnector returns one connector with install flag and status.
func (s *StatusService) GetConnector(ctx context.Context, name string) (*driving.ConnectorStatus, error) {
	if err := domain.ValidateConnectorName(name); err != nil {
		return nil, err
	}

	c, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	cs := &driving.ConnectorStatus{
		Connector: *c,
		Installed: s.catalog.Installed(name),
	}
	if cs.Installed {
		status, err := s.GetAuthStatus(ctx, name)
		if err == nil {
			cs.Auth = &status
		}
	}
	return cs, nil
}

func envVarStatuses(vars []domain.EnvVarDoc) []domain.EnvVarStatus {
	statuses := make([]domain.EnvVarStatus, 0, len(vars))
	for _, v := range vars {
		statuses = append(statuses, domain.EnvVarStatus{
			Variable:    v.Variable,
			Description: v.Description,
			Set:         os.Getenv(v.Variable) != "",
		})
	}
	return statuses
}
