package providers

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedCompleter caps the rate of outbound completion calls so a burst
// of users cannot flood the upstream service.
type RateLimitedCompleter struct {
	Completer
	limiter *rate.Limiter
}

// WithRateLimit wraps a completer with an outbound call cap. A non-positive
// rate disables the cap.
func WithRateLimit(c Completer, callsPerSecond float64) Completer {
	if callsPerSecond <= 0 {
		return c
	}
	return &RateLimitedCompleter{
		Completer: c,
		limiter:   rate.NewLimiter(rate.Limit(callsPerSecond), 1),
	}
}

func (r *RateLimitedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", ErrTimeout
	}
	return r.Completer.Complete(ctx, req)
}
