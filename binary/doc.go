// Package binary provisions released binaries of external tools so they
// can be used by later pipeline steps.
//
// At the core, a [Binary] names the tool, the wanted version and an origin
// pointing at where to obtain the release from. Installing a binary always
// fetches a fresh copy: the origin fills a scratch directory, which is then
// stored in the version keyed tool cache.
//
// Origins implement the logic needed to provision a release. Only one is
// implemented for now:
// - [RemoteArchiveDownload]: for releases published as .zip or .tar.gz archives
// Any other source can be added by fulfilling the [Origin] interface.
//
// The template passed to the origin carries the release target of the
// platform family, so a single URL template covers every platform.
//
// example usage
//
//	bin, err := binary.New(
//		"regolith",
//		"1.2.0",
//		binary.RemoteArchiveDownload(
//			"https://github.com/Bedrock-OSS/regolith/releases/download/{{.Version}}/regolith_{{.Version}}_{{.GOOS}}_{{.GOARCH}}{{.ArchiveExtension}}",
//		),
//	)
//	if err != nil {
//		return err
//	}
//
//	installation, err := bin.Install(ctx)
//	if err != nil {
//		return fmt.Errorf("failed to provision regolith: %w", err)
//	}
//
//	exec.Command(installation.Executable, "--help").Run()
package binary
