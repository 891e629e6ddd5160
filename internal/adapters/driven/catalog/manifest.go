package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

// ManifestFile is the manifest each connector package ships at its root.
const ManifestFile = "connector.json"

// ReadmeFile is the connector's bundled documentation.
const ReadmeFile = "README.md"

// manifest mirrors the connector.json layout inside an installed package.
type manifest struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Version     string        `json:"version"`
	Auth        *manifestAuth `json:"auth"`
}

type manifestAuth struct {
	Method string                 `json:"method"`
	Env    []domain.EnvVarDoc     `json:"env"`
	OAuth  *domain.OAuthEndpoints `json:"oauth"`
}

// parseManifest decodes a connector.json payload.
func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: manifest missing name", domain.ErrInvalidInput)
	}
	return &m, nil
}

// envVarLine matches documented environment variables in a connector
// readme, e.g.:
//
//	- `ACME_API_KEY` - API key for the Acme dashboard
//	* `ACME_REGION`: deployment region
var envVarLine = regexp.MustCompile("(?m)^[-*]\\s+`([A-Z][A-Z0-9_]*)`\\s*[-:–—]?\\s*(.*)$")

// envVarsFromReadme extracts environment variable names and descriptions
// verbatim from documentation text.
func envVarsFromReadme(readme string) []domain.EnvVarDoc {
	matches := envVarLine.FindAllStringSubmatch(readme, -1)
	if len(matches) == 0 {
		return nil
	}
	vars := make([]domain.EnvVarDoc, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, domain.EnvVarDoc{
			Variable:    name,
			Description: strings.TrimSpace(m[2]),
		})
	}
	return vars
}

// docsFromPackage combines a parsed manifest and readme text into the
// connector's documentation view. The manifest's explicit declarations win;
// the readme fills gaps.
func docsFromPackage(m *manifest, readme string) *domain.ConnectorDocs {
	docs := &domain.ConnectorDocs{Readme: readme}
	if m != nil && m.Auth != nil {
		docs.AuthMethod = m.Auth.Method
		docs.EnvVars = m.Auth.Env
		docs.OAuth = m.Auth.OAuth
	}
	if len(docs.EnvVars) == 0 {
		docs.EnvVars = envVarsFromReadme(readme)
	}
	return docs
}
