package driving

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// CredentialService manages stored keys and profiles for connectors.
type CredentialService interface {
	// SaveKey stores a key/token under field. An empty field selects the
	// scheme-appropriate default (apiKey for apikey, bearerToken for
	// bearer).
	SaveKey(ctx context.Context, name, field, key string) error

	// Record returns the active profile's credential record.
	Record(ctx context.Context, name string) (domain.CredentialRecord, error)

	// Clear removes the active profile's stored credentials.
	Clear(ctx context.Context, name string) error

	// Profiles lists profile names, and the active one, for a connector.
	Profiles(ctx context.Context, name string) (profiles []string, current string, err error)

	// UseProfile switches the active profile.
	UseProfile(ctx context.Context, name, profile string) error
}
