// Package scheduler hands committed withdrawals to the offline signer.
package scheduler

import (
	"context"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
)

//go:generate mockery --name Scheduler --output ./mocks --outpkg mocks

// Scheduler defines the interface for a component that hands a queued withdrawal to the signer.
type Scheduler interface {
	// ScheduleWithdrawal enqueues the withdrawal intent for the signer.
	ScheduleWithdrawal(ctx context.Context, w *models.Withdrawal) error
}

// WithdrawalIntent is the message the signer consumes. Amount is the net
// amount to transfer on-chain; the fee stays in the reserve.
type WithdrawalIntent struct {
	WithdrawalID       string    `json:"withdrawal_id"`
	Chain              string    `json:"chain"`
	DestinationAddress string    `json:"destination_address"`
	Amount             int64     `json:"amount"`
	Fee                int64     `json:"fee"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewWithdrawalIntent builds the signer message for w.
func NewWithdrawalIntent(w *models.Withdrawal) WithdrawalIntent {
	return WithdrawalIntent{
		WithdrawalID:       w.WithdrawalID,
		Chain:              w.Chain,
		DestinationAddress: w.DestinationAddress,
		Amount:             w.Net(),
		Fee:                w.Fee,
		CreatedAt:          w.CreatedAt,
	}
}

// OutcomeReport is the message the signer publishes once a withdrawal is
// broadcast or abandoned. Status is "sent" or "failed".
type OutcomeReport struct {
	WithdrawalID string `json:"withdrawal_id"`
	Status       string `json:"status"`
	TxSignature  string `json:"tx_signature,omitempty"`
	Note         string `json:"note,omitempty"`
}

// NoOp drops every withdrawal. The signer then pulls queued withdrawals over HTTP.
type NoOp struct{}

// ScheduleWithdrawal does nothing.
func (NoOp) ScheduleWithdrawal(context.Context, *models.Withdrawal) error {
	return nil
}

var _ Scheduler = NoOp{}
