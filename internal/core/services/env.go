package services

import (
	"os"
	"strings"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// EnvPrefix converts a connector name to its environment variable prefix:
// "google-drive" becomes "GOOGLE_DRIVE".
func EnvPrefix(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// LookupCredential resolves a credential value with environment-over-file
// precedence: the first set documented environment variable wins, then the
// record field. Shared by the status resolver and credential callers so the
// precedence rule lives in one place.
func LookupCredential(rec domain.CredentialRecord, envVars []domain.EnvVarDoc, field string) string {
	for _, v := range envVars {
		if val := os.Getenv(v.Variable); val != "" {
			return val
		}
	}
	return rec.GetString(field)
}
