package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/mattn/go-isatty"
)

// Origin defines the interface for provisioning binaries from different sources.
type Origin interface {
	// Install places the binary and anything shipped with it inside template.Directory.
	// The template contains information about the target platform and desired version.
	Install(ctx context.Context, template Template) error
}

// remotearchive implements [Origin] for downloading and extracting archived releases.
type remotearchive struct {
	urlformat string
	client    *http.Client
}

// RemoteArchiveDownload creates a new Origin that downloads and extracts a release
// archive. The URL can contain template variables that will be resolved using the
// [Template] values during installation.
// e.g. "https://github.com/foo/bar/releases/download/{{.Version}}/bar_{{.Version}}_{{.GOOS}}_{{.GOARCH}}{{.ArchiveExtension}}"
//
// The archive format is picked from the extension of the resolved URL;
// only .zip and .tar.gz are supported. Every entry of the archive is extracted.
func RemoteArchiveDownload(url string) Origin {
	return &remotearchive{
		urlformat: url,
		client:    cleanhttp.DefaultClient(),
	}
}

func (r *remotearchive) Install(ctx context.Context, template Template) error {
	if err := os.MkdirAll(template.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create destination folder %s: %w", template.Directory, err)
	}

	resolved, err := template.Resolve(r.urlformat)
	if err != nil {
		return fmt.Errorf("failed to resolve URL: %w", err)
	}

	name, err := archivename(resolved)
	if err != nil {
		return err
	}
	archive := filepath.Join(template.Directory, name)

	logstep(fmt.Sprintf("downloading from %s", resolved))

	if err := download(ctx, r.client, resolved, archive); err != nil {
		return err
	}

	if err := extract(archive, template.Directory); err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}

	return nil
}

func archivename(rawurl string) (string, error) {
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", rawurl, err)
	}

	name := path.Base(parsed.Path)
	if name == "/" || name == "." {
		return "", fmt.Errorf("URL %s doesn't point at a file", rawurl)
	}

	return name, nil
}

// download downloads a file from a URL to a local destination.
// Any transport error or non 2xx response is returned as a [DownloadError].
func download(ctx context.Context, client *http.Client, url, destination string) (err error) {
	logdetail(fmt.Sprintf("downloading %s to %s", url, destination))

	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.Red("     ✘ %s", elapsed)
			return
		}
		color.Green("     ✔ %s", elapsed)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	body := &bodyreader{reader: resp.Body}
	data, finish := progress(body, resp.ContentLength)
	defer finish()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destination, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", destination, cerr)
		}
	}()

	if _, err := io.Copy(out, data); err != nil {
		if body.err != nil {
			return &DownloadError{URL: url, Err: fmt.Errorf("failed to read response body: %w", body.err)}
		}
		return fmt.Errorf("failed to write file %s: %w", destination, err)
	}

	return nil
}

// bodyreader remembers read failures so they can be told apart from local write failures.
type bodyreader struct {
	reader io.Reader
	err    error
}

func (b *bodyreader) Read(p []byte) (int, error) {
	n, err := b.reader.Read(p)
	if err != nil && err != io.EOF {
		b.err = err
	}
	return n, err
}

// progress wraps an io.Reader to display a progress bar when running in a terminal.
// Returns the wrapped reader and a function to finalize the progress display.
// The progress bar shows transfer speed and completion percentage.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}

func logstep(text string) {
	fmt.Println(
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logdetail(text string) {
	fmt.Println(
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}
