package throttle

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// sweepThreshold is the number of tracked hosts at which idle buckets
// are reclaimed.
const sweepThreshold = 1024

// Config defines the throttler's per-host
// Requests Per Second and Burst Rate.
type Config struct {
	RPS   int
	Burst int
}

// throttle is an http.RoundTripper, keeping one time/rate token
// bucket limiter per request host.
type throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      int
	burst    int
	next     http.RoundTripper
	logFn    func() *slog.Logger
}
