package binary

import (
	"github.com/Bedrock-OSS/regolith-action/platform"
	"github.com/Bedrock-OSS/regolith-action/toolcache"
)

type Option func(b *Binary)

// WithPlatform overrides the detected platform family, which decides the
// release target and the executable name.
func WithPlatform(family platform.Family) Option {
	return func(b *Binary) {
		b.family = family
	}
}

// WithToolCache sets the cache the installed release is stored in.
// Defaults to [toolcache.FromEnv].
func WithToolCache(cache *toolcache.Cache) Option {
	return func(b *Binary) {
		b.cache = cache
	}
}

// WithWorkDir sets the directory scratch folders are created in.
// Defaults to the system temp dir.
func WithWorkDir(dir string) Option {
	return func(b *Binary) {
		b.workdir = dir
	}
}
