package download

import (
	"net/url"
	"slices"
	"strings"
)

// hostSuffix is appended to the host when a URL has no usable path segment.
const hostSuffix = ".html"

// Filename returns the last non-empty path segment of u. When the path has
// none (empty, or only slashes) it returns u's host with ".html" appended.
// Dot segments are skipped so the result never names a directory.
//
// An error wrapping [ErrNoHost] is returned when the fallback is needed and
// u has no host, e.g. for relative or opaque URLs.
func Filename(u *url.URL) (string, error) {
	if u == nil {
		return "", &Error{Err: ErrNoHost, Detail: "nil url"}
	}

	for _, segment := range slices.Backward(strings.Split(u.Path, "/")) {
		switch segment {
		case "", ".", "..":
			continue
		}

		return segment, nil
	}

	host := u.Hostname()
	if host == "" {
		return "", &Error{Err: ErrNoHost, Detail: u.String()}
	}

	return host + hostSuffix, nil
}
