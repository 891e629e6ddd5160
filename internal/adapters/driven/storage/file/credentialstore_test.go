package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	store, err := NewCredentialStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, "openai", domain.CredentialRecord{domain.FieldAPIKey: "sk-test"})
	require.NoError(t, err)

	rec, err := store.Load(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", rec.GetString(domain.FieldAPIKey))
}

func TestCredentialStore_SaveMerges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "github", domain.CredentialRecord{
		domain.FieldClientID: "cid",
		domain.FieldAPIKey:   "old",
	}))
	require.NoError(t, store.Save(ctx, "github", domain.CredentialRecord{
		domain.FieldAPIKey: "new",
	}))

	rec, err := store.Load(ctx, "github")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.GetString(domain.FieldAPIKey), "patched key overwritten")
	assert.Equal(t, "cid", rec.GetString(domain.FieldClientID), "untouched key preserved")
}

func TestCredentialStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Load(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.Empty(t, rec, "missing file loads as empty record")
}

func TestCredentialStore_LoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dir := filepath.Join(store.Root(), "broken", "profiles")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.json"), []byte("{not json"), 0600))

	rec, err := store.Load(ctx, "broken")
	require.NoError(t, err, "corrupt file fails soft")
	assert.Empty(t, rec)
}

func TestCredentialStore_RejectsInvalidNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", "..", "../x", "a/b", `a\b`, "UPPER"} {
		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidConnectorName, "name %q", name)

		err = store.Save(ctx, name, domain.CredentialRecord{"k": "v"})
		assert.ErrorIs(t, err, domain.ErrInvalidConnectorName, "name %q", name)
	}
}

func TestCredentialStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "openai", domain.CredentialRecord{domain.FieldAPIKey: "sk"}))

	info, err := os.Stat(filepath.Join(store.Root(), "openai", "profiles", "default.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialStore_WritesValidJSON(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "openai", domain.CredentialRecord{
		domain.FieldAPIKey:         "sk",
		domain.FieldTokenExpiresAt: int64(1700000000000),
	}))

	data, err := os.ReadFile(filepath.Join(store.Root(), "openai", "profiles", "default.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sk", decoded[domain.FieldAPIKey])
}

func TestCredentialStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "openai", domain.CredentialRecord{domain.FieldAPIKey: "sk"}))
	require.NoError(t, store.Clear(ctx, "openai"))

	rec, err := store.Load(ctx, "openai")
	require.NoError(t, err)
	assert.Empty(t, rec)

	// Clearing again is not an error.
	assert.NoError(t, store.Clear(ctx, "openai"))
}

func TestCredentialStore_Profiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, DefaultProfile, store.CurrentProfile("openai"))

	profiles, err := store.Profiles(ctx, "openai")
	require.NoError(t, err)
	assert.Empty(t, profiles)

	// Save under default, then switch and save under a second profile.
	require.NoError(t, store.Save(ctx, "openai", domain.CredentialRecord{domain.FieldAPIKey: "sk-default"}))
	require.NoError(t, store.UseProfile(ctx, "openai", "work"))
	require.NoError(t, store.Save(ctx, "openai", domain.CredentialRecord{domain.FieldAPIKey: "sk-work"}))

	assert.Equal(t, "work", store.CurrentProfile("openai"))

	profiles, err = store.Profiles(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "work"}, profiles)

	rec, err := store.Load(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-work", rec.GetString(domain.FieldAPIKey))

	rec, err = store.LoadProfile(ctx, "openai", "default")
	require.NoError(t, err)
	assert.Equal(t, "sk-default", rec.GetString(domain.FieldAPIKey))
}

func TestCredentialStore_UseProfile_InvalidName(t *testing.T) {
	store := newTestStore(t)

	err := store.UseProfile(context.Background(), "openai", "../sneaky")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
