// Package chain defines the read-only view of an external chain the bridge
// verifies deposits against.
package chain

import (
	"context"
	"fmt"

	"github.com/chris/custodial-bridge/pkg/models"
)

// Status tags the outcome of a lookup.
type Status int

const (
	// Found means the transaction is final and Transfer holds its token movement.
	Found Status = iota + 1
	// NotFound means the chain answered and has no finalized record of the signature.
	NotFound
	// NotFinalized means the transaction exists but is not yet irreversible.
	NotFinalized
	// Failed means the transaction is final but did not execute successfully.
	Failed
	// Unavailable means the chain could not be reached or did not answer in time.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case NotFinalized:
		return "not_finalized"
	case Failed:
		return "failed"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the tagged outcome of Adapter.Lookup. Transfer is set only when
// Status is Found; Reason describes every other status; Err carries the
// transport error behind Unavailable.
type Result struct {
	Status   Status
	Transfer *models.ChainTransfer
	Reason   string
	Err      error
}

// Adapter queries one external chain.
type Adapter interface {
	// Lookup returns the finalized token movement of a transaction.
	// It never caches: every call asks the chain again.
	Lookup(ctx context.Context, signature string) Result

	// NormalizeSignature validates signature and returns its canonical form.
	NormalizeSignature(signature string) (string, error)

	// NormalizeAddress validates address and returns its canonical form.
	NormalizeAddress(address string) (string, error)
}

// FoundResult wraps a transfer in a Found result.
func FoundResult(t *models.ChainTransfer) Result {
	return Result{Status: Found, Transfer: t}
}

// UnavailableResult wraps a transport error.
func UnavailableResult(err error) Result {
	return Result{Status: Unavailable, Reason: err.Error(), Err: err}
}
