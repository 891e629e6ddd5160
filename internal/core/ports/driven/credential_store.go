package driven

import (
	"context"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// CredentialStore persists per-connector credential records as JSON files,
// one per profile. Reads fail soft: a missing or corrupt file loads as an
// empty record. Writes are atomic (temp file + rename) so a concurrent
// reader never observes a half-written file.
type CredentialStore interface {
	// Load returns the record for the connector's active profile.
	Load(ctx context.Context, connector string) (domain.CredentialRecord, error)

	// LoadProfile returns the record for a specific profile.
	LoadProfile(ctx context.Context, connector, profile string) (domain.CredentialRecord, error)

	// Save shallow-merges patch into the active profile's record and
	// persists it atomically. New keys overwrite, others are preserved.
	Save(ctx context.Context, connector string, patch domain.CredentialRecord) error

	// Clear removes the active profile's credential file.
	// Clearing an absent file is not an error.
	Clear(ctx context.Context, connector string) error

	// Profiles lists the profile names that have a credential file.
	Profiles(ctx context.Context, connector string) ([]string, error)

	// CurrentProfile returns the active profile name ("default" when none
	// has been selected).
	CurrentProfile(connector string) string

	// UseProfile switches the active profile for a connector.
	UseProfile(ctx context.Context, connector, profile string) error
}
