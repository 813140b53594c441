package download

import (
	"fmt"
	"io/fs"
)

// defaultFileMode is used for newly created files unless WithFileMode is given.
const defaultFileMode fs.FileMode = 0o644

// Option defines optional settings for writing files.
//
// WithSkipExisting causes Write to return nil immediately when
// the destination file already exists, leaving it untouched.
//
// WithFileMode sets the permission bits of a newly created file.
// Files that already exist are truncated and keep their mode.
type Option func(*options) error

type options struct {
	skipExisting bool
	mode         fs.FileMode
}

func WithSkipExisting() Option {
	return func(opts *options) error {
		opts.skipExisting = true
		return nil
	}
}

func WithFileMode(mode fs.FileMode) Option {
	return func(opts *options) error {
		if mode&^fs.ModePerm != 0 {
			return fmt.Errorf("file mode %v must only contain permission bits", mode)
		}

		opts.mode = mode
		return nil
	}
}
