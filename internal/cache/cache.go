// Package cache manages the launcher's on-disk store of installed compiler
// versions. Entries are keyed by version and coordinated with lock files so
// concurrent launcher invocations racing on a first run don't trample each
// other.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Cache is a version-keyed store rooted at Root. Each entry lives at
// <Root>/<version> with the binary under <Root>/<version>/bin.
type Cache struct {
	Root string
}

// BinDir returns the directory holding the binary for version.
func (c *Cache) BinDir(version string) string {
	return filepath.Join(c.Root, version, "bin")
}

// WithLock runs fn while holding the write lock for version, creating the
// locks directory as needed.
func (c *Cache) WithLock(version string, fn func() error) error {
	version, err := parseVersion(version)
	if err != nil {
		return err
	}
	err = os.MkdirAll(c.locksDir(), 0o755)
	if err != nil {
		return err
	}
	unlock, err := lockedfile.MutexAt(c.lockfile(version)).Lock()
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// Versions lists the cached compiler versions.
func (c *Cache) Versions() ([]string, error) {
	entries, err := os.ReadDir(c.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		versions = append(versions, entry.Name())
	}
	return versions, nil
}

// Evict removes the cache entry for version along with its lock file. It is
// a no-op for versions that aren't cached.
func (c *Cache) Evict(version string) error {
	parsed, err := parseVersion(version)
	if err != nil {
		return err
	}
	return c.WithLock(parsed, func() error {
		dir := filepath.Join(c.Root, parsed)
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return errors.New("not a directory")
		}
		err = os.RemoveAll(dir)
		if err != nil {
			return err
		}
		return os.Remove(c.lockfile(parsed))
	})
}

// Clear evicts every cached version.
func (c *Cache) Clear() error {
	versions, err := c.Versions()
	if err != nil {
		return err
	}
	for _, version := range versions {
		err = c.Evict(version)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) locksDir() string {
	return filepath.Join(c.Root, ".locks")
}

func (c *Cache) lockfile(version string) string {
	return filepath.Join(c.locksDir(), version)
}

func parseVersion(version string) (string, error) {
	version = filepath.FromSlash(version)
	// a version must be a valid file name without path separators
	if version == "" || version != filepath.Base(version) {
		return "", errors.New("invalid version")
	}
	// reserve dot files for internal use
	if strings.HasPrefix(version, ".") {
		return "", errors.New("invalid version")
	}
	return version, nil
}
