package storage

import (
	"context"

	"github.com/chris/custodial-bridge/pkg/models"
)

// StatsReader defines the interface for per-chain ledger aggregates.
type StatsReader interface {
	// ChainStats counts and sums the deposits and withdrawals of a chain.
	// A chain with no rows yields zero totals, not ErrNotFound.
	ChainStats(ctx context.Context, chain string) (*models.BridgeStats, error)
}
