// Package platform buckets the host operating system into the release
// families regolith is published for.
package platform

import "runtime"

// Family is the operating system family a release archive is built for.
type Family string

const (
	Linux   Family = "linux"
	Windows Family = "windows"
	MacOS   Family = "macos"
)

// Target is the os/arch pair and archive format published for a family.
type Target struct {
	OS        string
	Arch      string
	Extension string
}

// Suffix returns the os_arch token used in release asset names.
func (t Target) Suffix() string {
	return t.OS + "_" + t.Arch
}

var targets = map[Family]Target{
	Windows: {OS: "windows", Arch: "amd64", Extension: "zip"},
	MacOS:   {OS: "darwin", Arch: "amd64", Extension: "tar.gz"},
	Linux:   {OS: "linux", Arch: "amd64", Extension: "tar.gz"},
}

// Detect returns the family of the running operating system.
func Detect() Family {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to a family.
// Anything that is neither windows nor darwin is treated as linux.
func FromGOOS(goos string) Family {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// Target returns the release target of the family, falling back to the
// linux target for values outside the known set.
func (f Family) Target() Target {
	if target, ok := targets[f]; ok {
		return target
	}
	return targets[Linux]
}

// ExecutableName returns the file name of the executable for the family.
func (f Family) ExecutableName(name string) string {
	if f == Windows {
		return name + ".exe"
	}
	return name
}

func (f Family) String() string {
	return string(f)
}
