package throttle

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// NewRoundTripper returns an http.RoundTripper that throttles outbound requests
// with a token bucket per host. logFn lazily resolves the logger at request
// time, making option ordering irrelevant. A nil-returning logFn skips the
// exhaustion logging.
func NewRoundTripper(rps, burst int, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
	}

	if next == nil {
		next = http.DefaultTransport
	}

	t := &throttle{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
		next:     next,
		logFn:    logFn,
	}

	return t, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	host := r.URL.Host
	limiter := t.limiter(host)

	var logger *slog.Logger
	if t.logFn != nil {
		logger = t.logFn()
	}

	var waited time.Duration
	if logger != nil && limiter.Tokens() < 1 {
		logger.Info("throttle tokens exhausted", "host", host, "rate", t.rps, "burst", t.burst)

		defer func() {
			logger.Info("throttle wait complete", "host", host, "waited", waited.String())
		}()
	}

	start := time.Now()

	err := limiter.Wait(ctx)
	waited = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}

// limiter returns the bucket for host, creating it on first use.
// Once sweepThreshold hosts are tracked, adding another one first drops
// every bucket that has fully refilled, since a fresh bucket is identical.
func (t *throttle) limiter(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[host]
	if ok {
		return l
	}

	if len(t.limiters) >= sweepThreshold {
		now := time.Now()
		for h, idle := range t.limiters {
			if idle.TokensAt(now) >= float64(t.burst) {
				delete(t.limiters, h)
			}
		}
	}

	l = rate.NewLimiter(rate.Limit(t.rps), t.burst)
	t.limiters[host] = l

	return l
}
