package driven

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// Catalog exposes the connector registry merged with local install state.
// Registry metadata is read-only; install state comes from scanning the
// connectors directory for packaged manifests.
type Catalog interface {
	// List returns every connector known to the registry, installed or not.
	List(ctx context.Context) ([]domain.Connector, error)

	// Get returns one connector by name. Returns domain.ErrNotFound for
	// names the registry does not know.
	Get(ctx context.Context, name string) (*domain.Connector, error)

	// Installed reports whether the connector's package is installed
	// locally.
	Installed(name string) bool

	// Docs returns the connector's bundled documentation and metadata.
	// Returns domain.ErrNotFound when the connector is not installed or
	// ships no documentation; the classifier degrades to defaults.
	Docs(ctx context.Context, name string) (*domain.ConnectorDocs, error)
}
