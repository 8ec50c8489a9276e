package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/fatih/color"
)

// Format is the archive format of a release.
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

var extractors = map[Format]func(archive, destination string) error{
	FormatZip:   unzip,
	FormatTarGz: untar,
}

// DetectFormat returns the archive format based on the suffix of name.
func DetectFormat(name string) (Format, error) {
	switch {
	case strings.HasSuffix(name, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(name, ".tar.gz"):
		return FormatTarGz, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// extract extracts every entry of the archive into destination.
// The format is decided by the archive name before the file is opened.
// Regular files are extracted with executable permissions (0755).
// The source archive is removed after successful extraction.
func extract(archive, destination string) (err error) {
	logdetail(fmt.Sprintf("extracting %s", archive))

	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.Red("     ✘ %s", elapsed)
			return
		}
		color.Green("     ✔ %s", elapsed)
	}()

	format, err := DetectFormat(archive)
	if err != nil {
		return err
	}

	if err := extractors[format](archive, destination); err != nil {
		return err
	}

	return os.Remove(archive)
}

// handles .tar.gz files
func untar(archive, destination string) error {
	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	decompressor, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer decompressor.Close()

	reader := tar.NewReader(decompressor)

	for {
		header, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		target, err := securejoin.SecureJoin(destination, header.Name)
		if err != nil {
			return fmt.Errorf("invalid archive entry %s: %w", header.Name, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writefile(target, reader); err != nil {
				return err
			}
		}
	}

	return nil
}

// handles .zip files
func unzip(archive, destination string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to create zip reader: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target, err := securejoin.SecureJoin(destination, file.Name)
		if err != nil {
			return fmt.Errorf("invalid archive entry %s: %w", file.Name, err)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		contents, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", file.Name, err)
		}

		err = writefile(target, contents)
		contents.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

func writefile(target string, contents io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, contents); err != nil {
		return fmt.Errorf("failed to copy data to file %s: %w", target, err)
	}

	return nil
}
