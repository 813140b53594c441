// Package fetcher exposes the client builder.
package fetcher

import (
	"github.com/adamwoolhether/fetcher/client"
)

// NewClient instantiates a new *Client sending userAgent with every request.
// Further options are applied after the user agent. If not specified, a
// pooled http.Client and http.Transport from go-cleanhttp are used.
func NewClient(userAgent string, opts ...client.Option) (*client.Client, error) {
	return client.Build(append([]client.Option{client.WithUserAgent(userAgent)}, opts...)...)
}
