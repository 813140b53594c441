package download

import (
	"net/url"
	"os"
	"path/filepath"
)

// Destination resolves the path a body fetched from final should be written to.
//
//   - dst is an existing directory: the [Filename] of final inside dst.
//   - dst is any other non-empty path: dst, unchanged.
//   - dst is empty: the [Filename] of final, relative to the working directory.
//
// final should be the URL that actually served the body, after redirects.
func Destination(dst string, final *url.URL) (string, error) {
	if dst != "" && !isDir(dst) {
		return dst, nil
	}

	name, err := Filename(final)
	if err != nil {
		return "", err
	}

	return filepath.Join(dst, name), nil
}

// isDir reports whether path currently exists and is a directory.
// Any stat failure counts as "not a directory".
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}
