package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "home")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_DefaultsToConnectHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".connect", "config.toml"), store.Path())
}

func TestNewConfigStore_BadDirectory(t *testing.T) {
	store, err := NewConfigStore("/dev/null/nope")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{{["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("name", "dashboard"))
	require.NoError(t, store.Set("port", 4310))
	require.NoError(t, store.Set("open", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("name"), "dashboard"},
		{"string missing", store.GetString("nope"), ""},
		{"string wrong type", store.GetString("port"), ""},
		{"int", store.GetInt("port"), 4310},
		{"int missing", store.GetInt("nope"), 0},
		{"int wrong type", store.GetInt("name"), 0},
		{"bool", store.GetBool("open"), true},
		{"bool missing", store.GetBool("nope"), false},
		{"bool wrong type", store.GetBool("name"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Get(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("pi", 3.14))

	v, ok := store.Get("pi")
	assert.True(t, ok)
	assert.Equal(t, 3.14, v)

	v, ok = store.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.port", 5000))
	require.NoError(t, store.Set("server.port", 5001))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 5001, reopened.GetInt("server.port"))
}

func TestConfigStore_NestedTablesFlattenToDotKeys(t *testing.T) {
	dir := t.TempDir()
	content := "[server]\nport = 4310\nopen = true\n\n[paths]\nconnectors = \"/opt/connectors\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 4310, store.GetInt("server.port"))
	assert.True(t, store.GetBool("server.open"))
	assert.Equal(t, "/opt/connectors", store.GetString("paths.connectors"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_MissingAndEmptyFiles(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		store := newTestStore(t)
		_, ok := store.Get("anything")
		assert.False(t, ok)
	})

	t.Run("comment-only file starts empty", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("# nothing here\n"), 0600))

		store, err := NewConfigStore(dir)
		require.NoError(t, err)
		_, ok := store.Get("anything")
		assert.False(t, ok)
	})
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("ch", make(chan int))
	assert.Error(t, err)
}

func TestConfigStore_LoadCorruptedAfterOpen(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("k", "v"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("][}{"), 0600))
	assert.Error(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := "key" + string(rune('0'+n))
			_ = store.Set(key, n)
			store.GetInt(key)
			store.GetString(key)
			store.GetBool(key)
		}(i)
	}
	wg.Wait()
}
