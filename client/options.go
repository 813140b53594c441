package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/fetcher/client/download"
	"github.com/adamwoolhether/fetcher/client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client    *http.Client
	rt        http.RoundTripper
	doer      Doer
	timeout   *time.Duration
	userAgent *string
	caBundle  string
	throttle  *throttle.Config
	tracer    trace.Tracer
	logger    *slog.Logger
}

// WithClient replaces the default [http.Client] used by the [Client].
// The given client is copied, never modified.
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithDoer replaces the whole HTTP capability. The [Doer] must follow
// redirects itself and set [http.Response.Request] to the final request.
// It cannot be combined with options that configure an [http.Client].
func WithDoer(d Doer) Option {
	return func(c *options) error {
		if d == nil {
			return errors.New("doer must not be nil")
		}
		c.doer = d
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every outgoing request,
// redirects included. An empty header suppresses the User-Agent entirely
// instead of falling back to the net/http default.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		if err := validateVar("user agent", header, "printascii"); err != nil {
			return err
		}
		c.userAgent = &header
		return nil
	}
}

// WithCABundle trusts the PEM encoded certificates in path in addition to
// the system roots. The base transport must be an [*http.Transport].
func WithCABundle(path string) Option {
	return func(c *options) error {
		if err := validateVar("ca bundle", path, "required,file"); err != nil {
			return err
		}
		c.caBundle = path
		return nil
	}
}

// WithThrottle enables per-host token-bucket rate limiting with the given
// requests per second and burst capacity. This adds admission control on
// top of the plain fetch contract: a request waits for a token before it is
// sent, and fails with [ErrRequest] if its context ends while waiting.
// One bucket is kept per host; buckets that have fully refilled are
// reclaimed once many hosts have been seen.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		c.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithTracer wraps every request in a client span from tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// FetchOption is a functional option for [Client.Text] and [Client.ToFile].
type FetchOption func(*fetchOpts) error

type fetchOpts struct {
	expStatus int
	headers   map[string][]string
	download  []download.Option
}

// WithExpectedStatus rejects any response whose status code is not code
// with an [UnexpectedStatusError]. By default every status is accepted.
func WithExpectedStatus(code int) FetchOption {
	return func(opts *fetchOpts) error {
		if code < 100 || code > 599 {
			return fmt.Errorf("invalid status code %d", code)
		}

		opts.expStatus = code

		return nil
	}
}

// WithHeaders adds custom headers to the outgoing request.
// The client's User-Agent always takes precedence.
func WithHeaders(headers map[string][]string) FetchOption {
	return func(opts *fetchOpts) error {
		opts.headers = headers

		return nil
	}
}
