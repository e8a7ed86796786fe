package storage

import (
	"context"

	"github.com/chris/custodial-bridge/pkg/models"
)

// DepositReader defines the interface for reading credited deposits.
type DepositReader interface {
	// GetDeposit retrieves a deposit by its transaction signature.
	GetDeposit(ctx context.Context, txSignature string) (*models.Deposit, error)

	// ListDepositsByAccount retrieves the most recent deposits of an account,
	// oldest first. A non-positive limit returns all of them.
	ListDepositsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Deposit, error)
}

// DepositManager defines the interface for crediting deposits.
type DepositManager interface {
	// CreditDeposit records the deposit, binds the sender wallet to the account
	// if it has none on the chain, credits the account balance and appends a
	// deposit_credited audit event. All of it happens in one atomic write.
	// It fails with ErrDuplicateDeposit, ErrWalletMismatch or ErrWalletClaimed
	// and leaves no trace when it does.
	CreditDeposit(ctx context.Context, deposit *models.Deposit) error
}

// DepositStore combines the reader and manager interfaces.
type DepositStore interface {
	DepositReader
	DepositManager
}
