// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound HTTP requests per host using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// # Usage
//
// Wrap an existing transport with [NewRoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(
//		2, // requests per second, per host
//		1, // burst capacity, per host
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// Every host (as it appears in the request URL, port included) gets its own
// bucket, so a slow mirror never delays fetches from another host. Each
// redirect hop is a separate request and takes a token from its own host.
//
// When the rate limit is exceeded, outbound requests block until a
// token becomes available or the request context is cancelled.
package throttle
