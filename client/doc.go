// Package client provides the core implementation of the fetching
// client built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithUserAgent("myapp/1.0"),
//		client.WithTimeout(30 * time.Second),
//	)
//
// The User-Agent is fixed at construction and sent with every request,
// redirect hops included. An empty User-Agent sends no header at all. Any construction failure matches [ErrConstruction].
//
// # Fetching Text
//
// [Client.Text] returns the body decoded with the charset the response
// declares, or one found in a BOM or an HTML <meta> tag. Anything else is
// read as UTF-8, with invalid bytes replaced by U+FFFD:
//
//	page, err := c.Text(ctx, "https://example.com/")
//
// # Fetching Files
//
// [Client.ToFile] writes the body to disk and returns the path written.
// The file name comes from the final URL after redirects:
//
//	path, err := c.ToFile(ctx, "https://example.com/dl/app.tar.gz", "")      // "app.tar.gz"
//	path, err = c.ToFile(ctx, "https://example.com/", "/tmp")                // "/tmp/example.com.html"
//	path, err = c.ToFile(ctx, "https://example.com/dl/app.tar.gz", "a.tgz")  // "a.tgz"
//
// # Errors
//
// Every failure is an [*Error] matching exactly one kind:
//
//	switch {
//	case errors.Is(err, client.ErrRequest):    // network, transport, body read
//	case errors.Is(err, client.ErrDecoding):   // body is not decodable text
//	case errors.Is(err, client.ErrFilesystem): // destination not writable
//	case errors.Is(err, client.ErrURL):        // malformed URL, or no host to name the file after
//	}
//
// For the file name rules see the
// [github.com/adamwoolhether/fetcher/client/download] package.
package client
