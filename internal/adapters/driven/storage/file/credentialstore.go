// Package file implements the credential store as per-connector JSON
// profile files under a fixed home-directory layout:
//
//	~/.connect/<connector>/
//	├── current_profile
//	└── profiles/
//	    ├── default.json
//	    └── <profile>.json
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// DefaultProfile is the profile used when none has been selected.
const DefaultProfile = "default"

const currentProfileFile = "current_profile"

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore stores credential records as JSON files, one per
// connector profile. Reads fail soft; writes go through a temp file and
// an atomic rename so a reader never observes a half-written record.
type CredentialStore struct {
	root string
}

// NewCredentialStore creates a credential store rooted at rootDir.
// If rootDir is empty, defaults to ~/.connect.
func NewCredentialStore(rootDir string) (*CredentialStore, error) {
	if rootDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootDir = filepath.Join(home, ".connect")
	}
	return &CredentialStore{root: rootDir}, nil
}

// Root returns the store's root directory.
func (s *CredentialStore) Root() string {
	return s.root
}

// Load returns the record for the connector's active profile.
func (s *CredentialStore) Load(ctx context.Context, connector string) (domain.CredentialRecord, error) {
	return s.LoadProfile(ctx, connector, s.CurrentProfile(connector))
}

// LoadProfile returns the record for a specific profile. A missing or
// malformed file yields an empty record, never an error: "not configured"
// is a valid steady state.
func (s *CredentialStore) LoadProfile(_ context.Context, connector, profile string) (domain.CredentialRecord, error) {
	path, err := s.profilePath(connector, profile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CredentialRecord{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var rec domain.CredentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warn("corrupt credential file %s: %v", path, err)
		return domain.CredentialRecord{}, nil
	}
	if rec == nil {
		rec = domain.CredentialRecord{}
	}
	return rec, nil
}

// Save shallow-merges patch into the active profile's record and writes
// the result atomically with 0600 permissions.
func (s *CredentialStore) Save(ctx context.Context, connector string, patch domain.CredentialRecord) error {
	profile := s.CurrentProfile(connector)
	path, err := s.profilePath(connector, profile)
	if err != nil {
		return err
	}

	existing, err := s.LoadProfile(ctx, connector, profile)
	if err != nil {
		return err
	}
	merged := existing.Merge(patch)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return atomicWrite(path, data)
}

// Clear removes the active profile's credential file. Clearing an absent
// file is not an error.
func (s *CredentialStore) Clear(_ context.Context, connector string) error {
	path, err := s.profilePath(connector, s.CurrentProfile(connector))
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Profiles lists the profile names that have a credential file.
func (s *CredentialStore) Profiles(_ context.Context, connector string) ([]string, error) {
	if err := domain.ValidateConnectorName(connector); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, connector, "profiles"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var profiles []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		profiles = append(profiles, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(profiles)
	return profiles, nil
}

// CurrentProfile returns the active profile name. Falls back to "default"
// when no selection has been made or the marker file is unreadable.
func (s *CredentialStore) CurrentProfile(connector string) string {
	if domain.ValidateConnectorName(connector) != nil {
		return DefaultProfile
	}
	data, err := os.ReadFile(filepath.Join(s.root, connector, currentProfileFile))
	if err != nil {
		return DefaultProfile
	}
	profile := strings.TrimSpace(string(data))
	if profile == "" || !profileNameValid(profile) {
		return DefaultProfile
	}
	return profile
}

// UseProfile switches the active profile for a connector.
func (s *CredentialStore) UseProfile(_ context.Context, connector, profile string) error {
	if err := domain.ValidateConnectorName(connector); err != nil {
		return err
	}
	if !profileNameValid(profile) {
		return fmt.Errorf("%w: profile %q", domain.ErrInvalidInput, profile)
	}
	dir := filepath.Join(s.root, connector)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create connector directory: %w", err)
	}
	return atomicWrite(filepath.Join(dir, currentProfileFile), []byte(profile+"\n"))
}

// profilePath resolves the credential file path for a connector profile.
// The connector name is validated before any filesystem touch; traversal
// attempts are rejected, never truncated.
func (s *CredentialStore) profilePath(connector, profile string) (string, error) {
	if err := domain.ValidateConnectorName(connector); err != nil {
		return "", err
	}
	if !profileNameValid(profile) {
		return "", fmt.Errorf("%w: profile %q", domain.ErrInvalidInput, profile)
	}
	return filepath.Join(s.root, connector, "profiles", profile+".json"), nil
}

// profileNameValid applies the same slug rule as connector names.
func profileNameValid(profile string) bool {
	return domain.ValidateConnectorName(profile) == nil
}

// atomicWrite writes data to path via a temp file and rename, with 0600
// permissions, so a crash mid-write never leaves a partial file behind.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}
