package driven

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// EventStore persists the auth activity log.
type EventStore interface {
	// Append records one event.
	Append(ctx context.Context, event domain.AuthEvent) error

	// List returns events newest first, optionally filtered by connector.
	// A limit of 0 applies the store's default.
	List(ctx context.Context, connector string, limit int) ([]domain.AuthEvent, error)

	// Close releases the underlying storage.
	Close() error
}
