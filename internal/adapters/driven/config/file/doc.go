// Package file provides the TOML-backed application configuration store.
//
// Configuration lives at ~/.connect/config.toml and covers the dashboard
// server port and path overrides. Credential records are NOT stored here;
// they live in per-connector profile files (see storage/file).
package file
