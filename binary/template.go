package binary

import (
	"strings"
	"text/template"

	"github.com/Bedrock-OSS/regolith-action/platform"
)

// Template contains fields used to resolve specific metadata about the binary.
// It includes the release target of the platform, location details and version information.
type Template struct {
	// GOOS is the operating system token used in release asset names (e.g., "linux", "darwin", "windows")
	GOOS string
	// GOARCH is the architecture token used in release asset names (e.g., "amd64")
	GOARCH string

	// Directory where the archive is downloaded and extracted
	Directory string
	// Name of the binary
	Name string
	// Cmd is the qualified path to the binary inside Directory
	Cmd string
	// Version is the release tag, or "latest"
	Version string
	// Extension is the file extension for the binary.
	// Empty on unix systems and ".exe" on windows.
	Extension string
	// ArchiveExtension is the extension of the release archive, including the leading dot.
	ArchiveExtension string
}

// NewTemplate builds the template of a binary release for a platform family.
func NewTemplate(name, version string, family platform.Family) Template {
	target := family.Target()

	return Template{
		GOOS:             target.OS,
		GOARCH:           target.Arch,
		Name:             name,
		Version:          version,
		Extension:        strings.TrimPrefix(family.ExecutableName(name), name),
		ArchiveExtension: "." + target.Extension,
	}
}

// Executable returns the file name of the binary.
func (t Template) Executable() string {
	return t.Name + t.Extension
}

// Resolve executes the provided format string as a template with the Template's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (t Template) Resolve(format string) (string, error) {
	tmpl, err := template.New("bin").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, t); err != nil {
		return "", err
	}

	return bld.String(), nil
}

// MustResolve executes the provided format string as a template with the Template's fields.
// Panics if the template can't be resolved correctly.
func (t Template) MustResolve(format string) string {
	resolved, err := t.Resolve(format)
	if err != nil {
		panic(err)
	}
	return resolved
}
