// Package domain defines the core business entities for Connect.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Connector: An installable API integration
//   - AuthMetadata: A connector's classified authentication scheme
//   - CredentialRecord: Stored credential material for one connector
//   - OAuthState: A pending OAuth authorization bound to its nonce
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
