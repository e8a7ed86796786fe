package storage

import (
	"context"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
)

// WithdrawalReader defines the interface for reading withdrawals.
type WithdrawalReader interface {
	// GetWithdrawal retrieves a withdrawal by its ID.
	GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)

	// ListWithdrawalsByAccount retrieves the most recent withdrawals of an
	// account, oldest first. A non-positive limit returns all of them.
	ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Withdrawal, error)

	// ListWithdrawalsByStatus retrieves withdrawals in the given status created
	// before the cutoff, oldest first. A zero cutoff disables the filter.
	ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, createdBefore time.Time, limit int32) ([]models.Withdrawal, error)
}

// WithdrawalManager defines the interface for the withdrawal state machine.
// Every method changes the balance, the withdrawal and the audit log atomically.
type WithdrawalManager interface {
	// CreateWithdrawal debits the full amount from the account and stores the
	// withdrawal as queued. A positive cooldown rejects the request with
	// ErrCooldownActive when the previous withdrawal is more recent.
	CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal, cooldown time.Duration) error

	// CompleteWithdrawal moves a queued withdrawal to sent.
	CompleteWithdrawal(ctx context.Context, withdrawalID, txSignature string) (*models.Withdrawal, error)

	// FailWithdrawal moves a queued withdrawal to failed and credits the amount back.
	FailWithdrawal(ctx context.Context, withdrawalID, note string) (*models.Withdrawal, error)
}

// WithdrawalStore combines the reader and manager interfaces.
// It is all the outcome and reconciliation workers need.
type WithdrawalStore interface {
	WithdrawalReader
	WithdrawalManager
}
