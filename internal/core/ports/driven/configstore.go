package driven

// ConfigStore reads and writes application settings. Keys use dot
// notation to address nested tables, so a TOML [server] block with a
// port entry is read as GetInt("server.port"). Typed getters return the
// zero value when the key is absent or holds a different type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns the location of the backing file.
	Path() string
}
