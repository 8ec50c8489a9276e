// Package regolith installs the regolith CLI from its GitHub releases and
// configures it for the current workspace.
package regolith

import (
	"context"
	"fmt"

	action "github.com/Bedrock-OSS/regolith-action"
	"github.com/Bedrock-OSS/regolith-action/binary"
	"github.com/Bedrock-OSS/regolith-action/platform"
	"github.com/Bedrock-OSS/regolith-action/toolcache"
)

const (
	// Tool is the name of the regolith executable and of its cache entry.
	Tool = "regolith"
	// Latest requests the most recent release.
	Latest = "latest"
	// ReleasesURL is where regolith release assets are published.
	ReleasesURL = "https://github.com/Bedrock-OSS/regolith/releases/"

	assetPath = `{{if eq .Version "latest"}}latest/download{{else}}download/{{.Version}}{{end}}` +
		"/{{.Name}}_{{.Version}}_{{.GOOS}}_{{.GOARCH}}{{.ArchiveExtension}}"
)

// Download describes the release archive to fetch for a platform.
type Download struct {
	URL    string
	Format binary.Format
}

// ResolveDownloadURL builds the release archive location for a version and
// platform family. It doesn't touch the network.
func ResolveDownloadURL(version string, family platform.Family) Download {
	return resolve(ReleasesURL, version, family)
}

func resolve(base, version string, family platform.Family) Download {
	return Download{
		URL:    binary.NewTemplate(Tool, version, family).MustResolve(base + assetPath),
		Format: binary.Format(family.Target().Extension),
	}
}

// Installer downloads a regolith release and stores it in the tool cache.
type Installer struct {
	Platform platform.Family
	Cache    *toolcache.Cache
	// WorkDir is where scratch folders are created, the system temp dir when empty.
	WorkDir string
	// BaseURL overrides [ReleasesURL]; it must end with a slash.
	BaseURL string
}

func (i *Installer) releases() string {
	if i.BaseURL == "" {
		return ReleasesURL
	}
	return i.BaseURL
}

// Install fetches the requested version and returns where it was installed.
// The installation directory is not added to PATH; see [action.AddPath].
func (i *Installer) Install(ctx context.Context, version string) (binary.Installation, error) {
	download := resolve(i.releases(), version, i.Platform)
	action.LogStep(fmt.Sprintf("resolved download url %s", download.URL))

	bin, err := binary.New(
		Tool,
		version,
		binary.RemoteArchiveDownload(i.releases()+assetPath),
		binary.WithPlatform(i.Platform),
		binary.WithToolCache(i.Cache),
		binary.WithWorkDir(i.WorkDir),
	)
	if err != nil {
		return binary.Installation{}, err
	}

	installation, err := bin.Install(ctx)
	if err != nil {
		return binary.Installation{}, fmt.Errorf("failed to install %s %s: %w", Tool, version, err)
	}

	action.LogStep(fmt.Sprintf("installed %s %s at %s", bin.Name(), bin.Version(), installation.Executable))
	return installation, nil
}
