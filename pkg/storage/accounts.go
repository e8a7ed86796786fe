package storage

import (
	"context"

	"github.com/chris/custodial-bridge/pkg/models"
)

// AccountReader defines the interface for reading balances and wallet bindings.
type AccountReader interface {
	// GetAccount retrieves an account by its ID. An account with no credited
	// deposits does not exist yet and yields ErrNotFound.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// GetWalletBinding retrieves the wallet bound to the account on the chain.
	GetWalletBinding(ctx context.Context, accountID, chain string) (*models.WalletBinding, error)

	// FindWalletOwner retrieves the binding that owns the address on the chain.
	FindWalletOwner(ctx context.Context, chain, address string) (*models.WalletBinding, error)
}
