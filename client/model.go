package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code. This prevents
// unbounded memory usage when a large response arrives with a
// wrong status.
const maxErrBodySize = 4 << 10 // 4KB

// maxDrainBodySize caps how much of an unread body is discarded so the
// connection can be reused. Larger leftovers just close the connection.
const maxDrainBodySize = 64 << 10 // 64KB

// execFn represents a func to operate on a response.
type execFn func(response *http.Response) error

// Failure kinds. Every error returned by [Build], [Client.Text] and
// [Client.ToFile] matches exactly one of them with [errors.Is].
var (
	// ErrConstruction means the client could not be built.
	ErrConstruction = errors.New("construction error")
	// ErrRequest means the request could not be formed or sent, the
	// connection failed, or the response body could not be read. An invalid
	// [FetchOption] is reported with this kind too, since no request can be
	// formed from it; the cause carries the option's own message.
	ErrRequest = errors.New("request error")
	// ErrDecoding means the response body could not be decoded as text.
	ErrDecoding = errors.New("decoding error")
	// ErrFilesystem means the destination file could not be created or written.
	ErrFilesystem = errors.New("filesystem error")
	// ErrURL is returned by [Client.ToFile] only. It means the URL is
	// malformed, or has no host when a file name had to be derived from it.
	// [Client.Text] reports a malformed URL as [ErrRequest].
	ErrURL = errors.New("url error")
)

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	// It is also the failure kind for a status rejected by [WithExpectedStatus].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is wrapped alongside [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
)

// Error describes a failed operation. Kind is one of the failure kinds above
// and Err is the underlying cause; both are reachable through [errors.Is]
// and [errors.As].
type Error struct {
	Op   string
	URL  string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// UnexpectedStatusError is returned when the HTTP response status code
// does not match the expected value.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

func constructionErr(err error) error {
	return &Error{Op: "build", Kind: ErrConstruction, Err: err}
}
