// Package catalog merges the static connector registry with the locally
// installed connector packages. Each installed package is a directory
// under the connectors root containing a connector.json manifest and,
// usually, a README with the documented environment variables.
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.Catalog = (*Catalog)(nil)

type installedConnector struct {
	connector domain.Connector
	docs      *domain.ConnectorDocs
}

// Catalog scans the connectors directory for installed packages and merges
// them with the built-in registry. The scan result is cached; an fsnotify
// watcher marks the cache dirty when the directory changes, and the next
// access rescans lazily.
type Catalog struct {
	dir     string
	builtin []domain.Connector

	mu        sync.Mutex
	installed map[string]installedConnector
	scanned   bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a catalog over the given connectors directory. The directory
// may not exist yet; it then reports every connector as not installed.
func New(connectorsDir string) *Catalog {
	return &Catalog{
		dir:     connectorsDir,
		builtin: builtinConnectors(),
	}
}

// Watch starts an fsnotify watcher on the connectors directory so installs
// and removals invalidate the cache without a restart. Failure to watch is
// degraded to rescan-per-call, not an error.
func (c *Catalog) Watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("catalog watcher unavailable: %v", err)
		return
	}
	if err := watcher.Add(c.dir); err != nil {
		logger.Debug("catalog watch %s: %v", c.dir, err)
		watcher.Close()
		return
	}

	c.mu.Lock()
	c.watcher = watcher
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher: %v", err)
			case <-done:
				return
			}
		}
	}()
}

// Close stops the watcher, if any.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

func (c *Catalog) invalidate() {
	c.mu.Lock()
	c.scanned = false
	c.mu.Unlock()
}

// List returns every known connector, installed or not, sorted by name.
// Installed connectors absent from the built-in registry are included:
// the connector set is discovered at runtime, never hardcoded.
func (c *Catalog) List(_ context.Context) ([]domain.Connector, error) {
	installed := c.snapshot()

	byName := make(map[string]domain.Connector, len(c.builtin)+len(installed))
	for _, b := range c.builtin {
		byName[b.Name] = b
	}
	for name, inst := range installed {
		if base, ok := byName[name]; ok {
			// Registry identity wins; the package contributes its version.
			base.Version = inst.connector.Version
			byName[name] = base
			continue
		}
		byName[name] = inst.connector
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]domain.Connector, 0, len(names))
	for _, name := range names {
		result = append(result, byName[name])
	}
	return result, nil
}

// Get returns one connector by name.
func (c *Catalog) Get(ctx context.Context, name string) (*domain.Connector, error) {
	connectors, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, conn := range connectors {
		if conn.Name == name {
			return &conn, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Installed reports whether the connector's package is present locally.
func (c *Catalog) Installed(name string) bool {
	_, ok := c.snapshot()[name]
	return ok
}

// Docs returns the connector's bundled documentation.
func (c *Catalog) Docs(_ context.Context, name string) (*domain.ConnectorDocs, error) {
	inst, ok := c.snapshot()[name]
	if !ok || inst.docs == nil {
		return nil, domain.ErrNotFound
	}
	return inst.docs, nil
}

// snapshot returns the installed-connector map, rescanning if the cache
// is dirty.
func (c *Catalog) snapshot() map[string]installedConnector {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.scanned {
		c.installed = c.scan()
		c.scanned = true
	}
	return c.installed
}

// scan reads every connector package under the connectors directory.
// Packages with an unreadable or invalid manifest are skipped with a
// warning; one broken install must not hide the rest.
func (c *Catalog) scan() map[string]installedConnector {
	installed := make(map[string]installedConnector)

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("scan connectors dir %s: %v", c.dir, err)
		}
		return installed
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if domain.ValidateConnectorName(name) != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(c.dir, name, ManifestFile))
		if err != nil {
			continue
		}
		m, err := parseManifest(data)
		if err != nil {
			logger.Warn("connector %s: %v", name, err)
			continue
		}

		readme := ""
		if raw, err := os.ReadFile(filepath.Join(c.dir, name, ReadmeFile)); err == nil {
			readme = string(raw)
		}

		displayName := m.DisplayName
		if displayName == "" {
			displayName = m.Name
		}
		installed[name] = installedConnector{
			connector: domain.Connector{
				Name:        name,
				DisplayName: displayName,
				Description: m.Description,
				Category:    m.Category,
				Version:     m.Version,
			},
			docs: docsFromPackage(m, readme),
		}
	}
	return installed
}
