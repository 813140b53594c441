// Package client exposes a series of helper functions for
// fetching remote content as text or into local files.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/adamwoolhether/fetcher/client/download"
	"github.com/adamwoolhether/fetcher/client/throttle"
	"github.com/adamwoolhether/fetcher/client/tracing"
)

// Doer executes a single HTTP request, following redirects.
// [*http.Client] satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps an HTTP capability, by default a pooled *http.Client from
// go-cleanhttp. It is immutable once built and safe for concurrent use.
type Client struct {
	doer      Doer
	userAgent *string
	logger    *slog.Logger
}

// Build creates a [Client] from the given options. No network activity occurs.
// All failures match [ErrConstruction].
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, constructionErr(fmt.Errorf("applying client option: %w", err))
		}
	}

	client := &Client{
		userAgent: opts.userAgent,
		logger:    slog.Default(),
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.doer != nil {
		if opts.client != nil || opts.rt != nil || opts.timeout != nil || opts.caBundle != "" || opts.throttle != nil || opts.tracer != nil {
			return nil, constructionErr(errors.New("doer cannot be combined with http client or transport options"))
		}
		client.doer = opts.doer

		return client, nil
	}

	hc := cleanhttp.DefaultPooledClient()
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
	}

	if opts.timeout != nil {
		hc.Timeout = *opts.timeout
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case hc.Transport != nil:
		transport = hc.Transport
	default:
		transport = cleanhttp.DefaultPooledTransport()
	}
	if opts.caBundle != "" {
		rt, err := withCABundle(transport, opts.caBundle)
		if err != nil {
			return nil, constructionErr(fmt.Errorf("configuring ca bundle: %w", err))
		}
		transport = rt
	}
	if opts.userAgent != nil {
		transport = userAgent{value: *opts.userAgent, base: transport}
	}
	if opts.tracer != nil {
		rt, err := tracing.NewRoundTripper(opts.tracer, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, constructionErr(fmt.Errorf("configuring tracing: %w", err))
		}
		transport = rt
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, constructionErr(fmt.Errorf("configuring throttle: %w", err))
		}
		transport = rt
	}
	hc.Transport = transport

	client.doer = hc

	return client, nil
}

// Text fetches rawURL and returns the body decoded as text, using the
// charset declared by the response or sniffed from the body.
func (c *Client) Text(ctx context.Context, rawURL string, opts ...FetchOption) (string, error) {
	const op = "fetch text"

	settings, err := fetchSettings(op, rawURL, opts)
	if err != nil {
		return "", err
	}

	var text string
	textFn := func(resp *http.Response) error {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &Error{Op: op, URL: rawURL, Kind: ErrRequest, Err: fmt.Errorf("reading body: %w", err)}
		}

		text, err = decodeText(body, resp.Header.Get("Content-Type"))
		if err != nil {
			return &Error{Op: op, URL: rawURL, Kind: ErrDecoding, Err: err}
		}

		c.logger.Debug("fetched text", "url", rawURL, "final_url", resp.Request.URL.String(), "status", resp.StatusCode, "bytes", len(body))

		return nil
	}

	if err := c.exec(ctx, op, rawURL, ErrRequest, settings, textFn); err != nil {
		return "", err
	}

	return text, nil
}

// ToFile fetches rawURL and writes the body to a local file, returning the
// path written. The file name is derived from the final URL after redirects
// when dst is empty (working directory) or an existing directory; any other
// dst is used verbatim. The body is held in memory before being written, and
// a failed write may leave a truncated file behind.
func (c *Client) ToFile(ctx context.Context, rawURL, dst string, opts ...FetchOption) (string, error) {
	const op = "fetch to file"

	settings, err := fetchSettings(op, rawURL, opts)
	if err != nil {
		return "", err
	}

	var path string
	fileFn := func(resp *http.Response) error {
		final := resp.Request.URL

		dest, err := download.Destination(dst, final)
		if err != nil {
			return &Error{Op: op, URL: rawURL, Kind: ErrURL, Err: fmt.Errorf("resolving destination: %w", err)}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &Error{Op: op, URL: rawURL, Kind: ErrRequest, Err: fmt.Errorf("reading body: %w", err)}
		}

		if err := download.Write(dest, body, c.logger, settings.download...); err != nil {
			return &Error{Op: op, URL: rawURL, Kind: ErrFilesystem, Err: err}
		}

		path = dest
		c.logger.Debug("fetched to file", "url", rawURL, "final_url", final.String(), "status", resp.StatusCode, "path", dest, "bytes", len(body))

		return nil
	}

	if err := c.exec(ctx, op, rawURL, ErrURL, settings, fileFn); err != nil {
		return "", err
	}

	return path, nil
}

// exec runs a GET for rawURL and the injected function on the response.
// A rawURL that cannot form a request is reported with badURLKind.
// Errors returned by fn are passed through untouched.
func (c *Client) exec(ctx context.Context, op, rawURL string, badURLKind error, settings fetchOpts, fn execFn) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Error{Op: op, URL: rawURL, Kind: badURLKind, Err: fmt.Errorf("instantiating request: %w", err)}
	}

	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}
	if c.userAgent != nil {
		req.Header.Set("User-Agent", *c.userAgent)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return &Error{Op: op, URL: rawURL, Kind: ErrRequest, Err: fmt.Errorf("exec http do: %w", err)}
	}

	if resp.Request == nil || resp.Request.URL == nil {
		resp.Request = req
	}

	defer func() {
		if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBodySize)); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if settings.expStatus != 0 && resp.StatusCode != settings.expStatus {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr.Err = fmt.Errorf("%w: %w", ErrUnexpectedStatusCode, ErrAuthFailure)
		}

		return &Error{Op: op, URL: rawURL, Kind: ErrUnexpectedStatusCode, Err: statusErr}
	}

	return fn(resp)
}

// fetchSettings applies opts. An invalid option means no request could be
// formed, so it is reported as a request error.
func fetchSettings(op, rawURL string, opts []FetchOption) (fetchOpts, error) {
	var settings fetchOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return fetchOpts{}, &Error{Op: op, URL: rawURL, Kind: ErrRequest, Err: fmt.Errorf("applying fetch option: %w", err)}
		}
	}

	return settings, nil
}

// withCABundle returns a clone of rt trusting the certificates in path on
// top of the system pool.
func withCABundle(rt http.RoundTripper, path string) (http.RoundTripper, error) {
	base, ok := rt.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("transport %T is not an *http.Transport", rt)
	}

	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", path)
	}

	transport := base.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	transport.TLSClientConfig.RootCAs = pool

	return transport, nil
}
