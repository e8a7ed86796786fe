package bridge

import (
	"context"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
)

//go:generate mockery --name Bridge --output ./mocks --outpkg mocks

// InfoReader exposes the public configuration of the bridged chains.
type InfoReader interface {
	BridgeInfo(chain string) (ChainConfig, error)
}

// DepositVerifier credits verified chain deposits.
type DepositVerifier interface {
	InfoReader
	VerifyAndCredit(ctx context.Context, chain, accountID, txSignature string) (*models.Deposit, error)
}

// WithdrawalManager queues withdrawals and applies signer outcomes.
type WithdrawalManager interface {
	InfoReader
	RequestWithdrawal(ctx context.Context, chain, accountID, destination string, amount int64) (*models.Withdrawal, error)
	ReportOutcome(ctx context.Context, withdrawalID string, outcome Outcome) (*models.Withdrawal, error)
	GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	ListWithdrawals(ctx context.Context, status models.WithdrawalStatus, limit int) ([]models.Withdrawal, error)
}

// LedgerReader serves the read paths over deposits, withdrawals and audit events.
type LedgerReader interface {
	InfoReader
	GetHistory(ctx context.Context, accountID string, limit int) ([]models.HistoryEntry, error)
	QueryAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error)
	BridgeStats(ctx context.Context, chain string) (*models.BridgeStats, error)
}

// Reconciler re-hands stale queued withdrawals to the signer.
type Reconciler interface {
	RescheduleStale(ctx context.Context, staleAfter time.Duration, limit int32) (int, error)
}

// Bridge is every operation of the Service.
type Bridge interface {
	DepositVerifier
	WithdrawalManager
	LedgerReader
	Reconciler
}

var _ Bridge = (*Service)(nil)
