package chain

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/metrics"
)

// GuardOptions configures a Guarded adapter.
type GuardOptions struct {
	Name    string
	Timeout time.Duration
	Retries int
	Backoff time.Duration
	// ConsecutiveFailures opens the breaker. Zero disables breaking.
	ConsecutiveFailures uint32
	OpenFor             time.Duration
}

// Guarded bounds every lookup of the wrapped adapter with a timeout, retries
// Unavailable results and stops calling a chain that keeps failing.
type Guarded struct {
	next    Adapter
	opts    GuardOptions
	breaker *gobreaker.CircuitBreaker[Result]
	log     *zap.Logger
}

var _ Adapter = (*Guarded)(nil)

// NewGuarded wraps next.
func NewGuarded(next Adapter, opts GuardOptions, log *zap.Logger) *Guarded {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 200 * time.Millisecond
	}
	if opts.OpenFor <= 0 {
		opts.OpenFor = 30 * time.Second
	}

	g := &Guarded{next: next, opts: opts, log: log}
	if opts.ConsecutiveFailures > 0 {
		g.breaker = gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
			Name:    opts.Name,
			Timeout: opts.OpenFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= opts.ConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.ChainBreakerState.WithLabelValues(name, from.String()).Set(0)
				metrics.ChainBreakerState.WithLabelValues(name, to.String()).Set(1)
				log.Warn("chain circuit breaker state changed",
					zap.String("chain", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}
	return g
}

func (g *Guarded) NormalizeSignature(signature string) (string, error) {
	return g.next.NormalizeSignature(signature)
}

func (g *Guarded) NormalizeAddress(address string) (string, error) {
	return g.next.NormalizeAddress(address)
}

// Lookup calls the wrapped adapter up to Retries+1 times while it reports Unavailable.
func (g *Guarded) Lookup(ctx context.Context, signature string) Result {
	var res Result
	for attempt := 0; attempt <= g.opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return UnavailableResult(ctx.Err())
			case <-time.After(g.opts.Backoff * time.Duration(attempt)):
			}
		}
		start := time.Now()
		res = g.once(ctx, signature)
		metrics.ChainLookupDuration.WithLabelValues(g.opts.Name, res.Status.String()).Observe(time.Since(start).Seconds())
		if res.Status != Unavailable {
			return res
		}
		g.log.Debug("chain lookup unavailable",
			zap.String("chain", g.opts.Name),
			zap.String("tx_signature", signature),
			zap.Int("attempt", attempt+1),
			zap.Error(res.Err))
	}
	return res
}

func (g *Guarded) once(ctx context.Context, signature string) Result {
	call := func() (Result, error) {
		cctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
		res := g.next.Lookup(cctx, signature)
		if res.Status == Unavailable {
			if res.Err == nil {
				res.Err = errors.New(res.Reason)
			}
			return res, res.Err
		}
		return res, nil
	}
	if g.breaker == nil {
		res, _ := call()
		return res
	}

	res, err := g.breaker.Execute(call)
	if err != nil && res.Status != Unavailable {
		return UnavailableResult(err)
	}
	return res
}
