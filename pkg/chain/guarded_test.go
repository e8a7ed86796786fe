package chain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type scriptedAdapter struct {
	calls   atomic.Int32
	results []Result
	block   bool
}

func (a *scriptedAdapter) Lookup(ctx context.Context, _ string) Result {
	n := int(a.calls.Add(1)) - 1
	if a.block {
		<-ctx.Done()
		return UnavailableResult(ctx.Err())
	}
	if n >= len(a.results) {
		return a.results[len(a.results)-1]
	}
	return a.results[n]
}

func (a *scriptedAdapter) NormalizeSignature(signature string) (string, error) { return signature, nil }

func (a *scriptedAdapter) NormalizeAddress(address string) (string, error) { return address, nil }

func TestGuardedLookup(t *testing.T) {
	found := FoundResult(&models.ChainTransfer{Signature: "sig1", Amount: 100})
	down := UnavailableResult(errors.New("connection refused"))

	t.Run("Retries Unavailable Until Found", func(t *testing.T) {
		next := &scriptedAdapter{results: []Result{down, down, found}}
		g := NewGuarded(next, GuardOptions{Name: "solana", Retries: 2, Backoff: time.Millisecond}, zaptest.NewLogger(t))

		res := g.Lookup(context.Background(), "sig1")

		assert.Equal(t, Found, res.Status)
		assert.Equal(t, int32(3), next.calls.Load())
	})

	t.Run("Does Not Retry Definitive Answers", func(t *testing.T) {
		next := &scriptedAdapter{results: []Result{{Status: NotFound, Reason: "no record"}}}
		g := NewGuarded(next, GuardOptions{Name: "solana", Retries: 3, Backoff: time.Millisecond}, zaptest.NewLogger(t))

		res := g.Lookup(context.Background(), "sig1")

		assert.Equal(t, NotFound, res.Status)
		assert.Equal(t, int32(1), next.calls.Load())
	})

	t.Run("Gives Up After Retries", func(t *testing.T) {
		next := &scriptedAdapter{results: []Result{down}}
		g := NewGuarded(next, GuardOptions{Name: "solana", Retries: 1, Backoff: time.Millisecond}, zaptest.NewLogger(t))

		res := g.Lookup(context.Background(), "sig1")

		assert.Equal(t, Unavailable, res.Status)
		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("Timeout Maps To Unavailable", func(t *testing.T) {
		next := &scriptedAdapter{block: true}
		g := NewGuarded(next, GuardOptions{Name: "solana", Timeout: 10 * time.Millisecond}, zaptest.NewLogger(t))

		res := g.Lookup(context.Background(), "sig1")

		assert.Equal(t, Unavailable, res.Status)
		assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	})

	t.Run("Open Breaker Short Circuits", func(t *testing.T) {
		next := &scriptedAdapter{results: []Result{down}}
		g := NewGuarded(next, GuardOptions{
			Name:                "solana",
			Backoff:             time.Millisecond,
			ConsecutiveFailures: 2,
			OpenFor:             time.Minute,
		}, zaptest.NewLogger(t))

		g.Lookup(context.Background(), "sig1")
		g.Lookup(context.Background(), "sig1")
		res := g.Lookup(context.Background(), "sig1")

		assert.Equal(t, Unavailable, res.Status)
		assert.Equal(t, int32(2), next.calls.Load())
	})
}
