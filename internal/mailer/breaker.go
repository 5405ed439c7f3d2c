package mailer

import (
	"context"

	"github.com/storytimehq/storytime-api/pkg/circuitbreaker"
)

// breakerTransport guards a transport with a circuit breaker: once the
// provider has failed repeatedly, further sends are skipped immediately
// instead of tying up requests on a dead connection. Dispatch stays a
// single attempt either way.
type breakerTransport struct {
	inner   Transport
	breaker circuitbreaker.CircuitBreaker
}

// WithCircuitBreaker decorates tr; a nil cb gets the default thresholds.
func WithCircuitBreaker(tr Transport, cb circuitbreaker.CircuitBreaker) Transport {
	if cb == nil {
		cb = circuitbreaker.NewCircuitBreaker(nil)
	}

	return &breakerTransport{inner: tr, breaker: cb}
}

func (t *breakerTransport) send(ctx context.Context, msg message) error {
	return t.breaker.Call(func() error {
		return t.inner.send(ctx, msg)
	})
}
