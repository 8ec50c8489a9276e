package binary

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when an archive name doesn't end in one
// of the supported extensions.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// DownloadError reports a failed archive download.
// StatusCode is set when the server answered with a non-success status,
// Err when the request itself failed.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to download %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to download %s: received unexpected response http%d", e.URL, e.StatusCode)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
