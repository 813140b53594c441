// Package download decides where a fetched body lands on disk and writes
// it there.
//
// # File Names
//
// [Filename] derives a local file name from a URL: the last non-empty path
// segment, or the host with ".html" appended when the path has none:
//
//	u, _ := url.Parse("https://example.com/releases/v1.2/app.tar.gz")
//	name, err := download.Filename(u) // "app.tar.gz"
//
// # Destinations
//
// [Destination] applies the destination rules: an existing directory gets
// the derived name appended, any other path is used verbatim, and an empty
// path means the derived name in the working directory.
//
// [Write] creates or truncates the file and writes the whole body to it.
//
// Most callers should use the higher-level
// [github.com/adamwoolhether/fetcher/client] package, which resolves the
// destination against the post-redirect URL and calls Write internally.
package download
