package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bedrock-OSS/regolith-action/platform"
	"github.com/Bedrock-OSS/regolith-action/toolcache"
)

// Installation is the result of installing a binary.
type Installation struct {
	// Dir is the tool cache directory holding the extracted release.
	Dir string
	// Executable is the expected path of the binary inside Dir.
	// It is not checked for existence.
	Executable string
}

type Binary struct {
	version string
	workdir string
	family  platform.Family

	origin   Origin
	cache    *toolcache.Cache
	template Template
}

func New(command, version string, origin Origin, options ...Option) (*Binary, error) {
	if command == "" {
		return nil, errors.New("command must be set")
	}
	if version == "" {
		return nil, errors.New("version must be set")
	}

	bin := Binary{
		version: version,
		family:  platform.Detect(),
		origin:  origin,
	}

	for _, opt := range options {
		opt(&bin)
	}

	if bin.cache == nil {
		cache, err := toolcache.FromEnv(os.Getenv)
		if err != nil {
			return nil, err
		}
		bin.cache = cache
	}

	bin.template = NewTemplate(command, version, bin.family)

	return &bin, nil
}

func (b *Binary) Name() string {
	return b.template.Name
}

func (b *Binary) Version() string {
	return b.version
}

// Install provisions a fresh copy of the binary: the origin installs it into
// a scratch directory, which is then stored in the tool cache under the
// binary name and version. Existing cache entries are replaced.
// The scratch directory is always removed; a partially written cache entry is not.
func (b *Binary) Install(ctx context.Context) (Installation, error) {
	logstep(fmt.Sprintf("installing %s %s for %s", b.template.Name, b.version, b.family))

	scratch, err := os.MkdirTemp(b.workdir, b.template.Name+"-*")
	if err != nil {
		return Installation{}, fmt.Errorf("failed to create scratch folder: %w", err)
	}
	defer os.RemoveAll(scratch)

	tmpl := b.template
	tmpl.Directory = scratch
	tmpl.Cmd = filepath.Join(scratch, tmpl.Executable())

	if err := b.origin.Install(ctx, tmpl); err != nil {
		return Installation{}, err
	}

	dir, err := b.cache.ForArch(b.template.GOARCH).Store(ctx, scratch, b.template.Name, b.version)
	if err != nil {
		return Installation{}, err
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return Installation{}, fmt.Errorf("failed to resolve dir %s: %w", dir, err)
	}
	logdetail(fmt.Sprintf("cached in %s", dir))

	return Installation{
		Dir:        dir,
		Executable: filepath.Join(dir, tmpl.Executable()),
	}, nil
}
