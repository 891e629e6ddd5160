package driving

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// ConnectorStatus is one catalog entry merged with local install and auth
// state, as rendered by the dashboard list view.
type ConnectorStatus struct {
	domain.Connector
	// Installed reports whether the connector package is present locally.
	Installed bool `json:"installed"`
	// Auth is the live status snapshot. Nil for non-installed connectors,
	// which get no status lookup.
	Auth *domain.AuthStatus `json:"auth"`
}

// StatusService resolves point-in-time auth status for connectors.
// It never fails for valid names: unreachable or malformed credential
// records degrade to configured:false.
type StatusService interface {
	// GetAuthStatus returns the status snapshot for one connector.
	GetAuthStatus(ctx context.Context, name string) (domain.AuthStatus, error)

	// ListConnectors returns all catalog connectors with install flags and,
	// for installed ones, live auth status.
	ListConnectors(ctx context.Context) ([]ConnectorStatus, error)

	// GetConnector returns one connector with install flag and status.
	// Returns domain.ErrNotFound for unknown names.
	GetConnector(ctx context.Context, name string) (*ConnectorStatus, error)
}
