// Package toolcache stores extracted tool trees in a version keyed
// directory layout compatible with the hosted runner tool cache:
//
//	<root>/<tool>/<version>/<arch>
//	<root>/<tool>/<version>/<arch>.complete
//
// The marker file is written last, so an entry without it is considered
// incomplete and is never returned by [Cache.Find].
//
// The arch segment defaults to the runner architecture; use [Cache.ForArch]
// when the stored artifact targets a different one.
package toolcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnvRoot is the variable hosted runners use to point at the tool cache.
const EnvRoot = "RUNNER_TOOL_CACHE"

type Cache struct {
	root string
	arch string
}

// New creates a cache rooted at the given directory.
func New(root string) *Cache {
	return &Cache{
		root: root,
		arch: runtime.GOARCH,
	}
}

// FromEnv creates a cache rooted at $RUNNER_TOOL_CACHE, or under the user
// cache directory when the variable is not set.
func FromEnv(getenv func(string) string) (*Cache, error) {
	if root := getenv(EnvRoot); root != "" {
		return New(root), nil
	}

	usercache, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user cache dir: %w", err)
	}

	return New(filepath.Join(usercache, "regolith-action", "tool-cache")), nil
}

// ForArch returns a view of the same cache keyed by the given architecture.
func (c *Cache) ForArch(arch string) *Cache {
	return &Cache{
		root: c.root,
		arch: arch,
	}
}

// Root returns the directory the cache lives in.
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the directory of the entry for a tool version, whether it
// exists or not.
func (c *Cache) Dir(tool, version string) string {
	return filepath.Join(c.root, tool, version, c.arch)
}

// Find returns the directory of a complete cache entry.
func (c *Cache) Find(tool, version string) (string, bool) {
	dir := c.Dir(tool, version)
	if _, err := os.Stat(dir + ".complete"); err != nil {
		return "", false
	}
	return dir, true
}

// Store copies the source tree into the entry for a tool version, replacing
// whatever was cached there before, and returns the entry directory.
// On failure the partially written entry is left in place.
func (c *Cache) Store(ctx context.Context, source, tool, version string) (string, error) {
	if tool == "" || version == "" {
		return "", errors.New("tool and version must be set")
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("failed to stat source %s: %w", source, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("source %s is not a directory", source)
	}

	dir := c.Dir(tool, version)
	marker := dir + ".complete"

	if err := os.RemoveAll(marker); err != nil {
		return "", fmt.Errorf("failed to remove marker %s: %w", marker, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to clear cache entry %s: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache folder %s: %w", filepath.Dir(dir), err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.CopyFS(dir, os.DirFS(source)); err != nil {
		return "", fmt.Errorf("failed to copy %s into cache: %w", source, err)
	}

	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return "", fmt.Errorf("failed to write marker %s: %w", marker, err)
	}

	return dir, nil
}
