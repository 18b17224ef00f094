package backend

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle owns the request-pacing state for outbound backend calls. It is
// the single holder of that state: the client never tracks timestamps itself,
// it just waits here before each request.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle paces requests at rps per second with a burst of one, so calls
// are spaced evenly rather than front-loaded. A non-positive rps disables
// throttling.
func NewThrottle(rps float64) *Throttle {
	if rps <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until a request is permitted or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
