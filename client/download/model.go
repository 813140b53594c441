package download

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHost is returned when a file name must fall back to the URL's
	// host and the URL has none.
	ErrNoHost = errors.New("url has no host")
)

// Error wraps a sentinel error with additional detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
