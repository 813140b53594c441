package client

import (
	"fmt"
	"io/fs"

	"github.com/adamwoolhether/fetcher/client/download"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [download].
// ————————————————————————————————————————————————————————————————————

// DownloadError wraps a sentinel error with additional detail.
type DownloadError = download.Error

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

// ErrNoHost indicates a file name had to be derived from a URL without a host.
// It is always accompanied by [ErrURL].
var ErrNoHost = download.ErrNoHost

// ————————————————————————————————————————————————————————————————————
// Download option forwarding functions
// ————————————————————————————————————————————————————————————————————

// WithSkipExisting causes [Client.ToFile] to leave the destination untouched
// when it already exists. The request is still made, since the destination
// depends on the final URL.
func WithSkipExisting() FetchOption {
	return func(opts *fetchOpts) error {
		opts.download = append(opts.download, download.WithSkipExisting())
		return nil
	}
}

// WithFileMode sets the permission bits of a file created by [Client.ToFile].
// It has no effect on [Client.Text].
func WithFileMode(mode fs.FileMode) FetchOption {
	return func(opts *fetchOpts) error {
		if mode&^fs.ModePerm != 0 {
			return fmt.Errorf("file mode %v must only contain permission bits", mode)
		}

		opts.download = append(opts.download, download.WithFileMode(mode))

		return nil
	}
}
