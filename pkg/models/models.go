package models

import (
	"time"
)

// WithdrawalStatus defines the possible states of a withdrawal.
type WithdrawalStatus string

const (
	QUEUED WithdrawalStatus = "queued"
	SENT   WithdrawalStatus = "sent"
	FAILED WithdrawalStatus = "failed"
)

// Terminal reports whether no further transition is allowed out of the status.
func (s WithdrawalStatus) Terminal() bool {
	return s == SENT || s == FAILED
}

// AuditEventType names the state transition an audit event records.
type AuditEventType string

const (
	DepositCredited  AuditEventType = "deposit_credited"
	WithdrawalQueued AuditEventType = "withdrawal_queued"
	WithdrawalSent   AuditEventType = "withdrawal_sent"
	WithdrawalFailed AuditEventType = "withdrawal_failed"
)

// Account is the internal balance holder. Amounts are integer base units of the bridged token.
type Account struct {
	AccountID        string     `json:"account_id" dynamodbav:"account_id" db:"account_id"`
	Balance          int64      `json:"balance" dynamodbav:"balance" db:"balance"`
	Version          int64      `json:"version" dynamodbav:"version" db:"version"`
	LastWithdrawalAt *time.Time `json:"last_withdrawal_at,omitempty" dynamodbav:"last_withdrawal_at,omitempty,unixtime" db:"last_withdrawal_at"`
	CreatedAt        time.Time  `json:"created_at" dynamodbav:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" dynamodbav:"updated_at" db:"updated_at"`
}

// WalletBinding ties one external address on one chain to one account.
type WalletBinding struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id" db:"account_id"`
	Chain     string    `json:"chain" dynamodbav:"chain" db:"chain"`
	Address   string    `json:"address" dynamodbav:"address" db:"address"`
	BoundAt   time.Time `json:"bound_at" dynamodbav:"bound_at" db:"bound_at"`
}

// ChainTransfer is a finalized token movement as observed on the external chain.
// It is never persisted; the verifier fetches it fresh on every attempt.
type ChainTransfer struct {
	Signature        string
	Chain            string
	MintID           string
	SenderAddress    string
	RecipientAddress string
	Amount           int64
	Slot             uint64
	FinalizedAt      time.Time
}

// Deposit is the immutable record of one credited chain transfer.
type Deposit struct {
	DepositID     string    `json:"deposit_id" dynamodbav:"deposit_id" db:"deposit_id"`
	TxSignature   string    `json:"tx_signature" dynamodbav:"tx_signature" db:"tx_signature"`
	Chain         string    `json:"chain" dynamodbav:"chain" db:"chain"`
	AccountID     string    `json:"account_id" dynamodbav:"account_id" db:"account_id"`
	Amount        int64     `json:"amount" dynamodbav:"amount" db:"amount"`
	Mint          string    `json:"mint" dynamodbav:"mint" db:"mint"`
	SenderAddress string    `json:"sender_address" dynamodbav:"sender_address" db:"sender_address"`
	Slot          uint64    `json:"slot" dynamodbav:"slot" db:"slot"`
	BlockTime     time.Time `json:"block_time" dynamodbav:"block_time" db:"block_time"`
	CreditedAt    time.Time `json:"credited_at" dynamodbav:"credited_at" db:"credited_at"`
}

// Withdrawal is a queued intent to transfer tokens out of the reserve.
// Amount is debited in full at creation; Fee is retained from it.
type Withdrawal struct {
	WithdrawalID       string           `json:"withdrawal_id" dynamodbav:"withdrawal_id" db:"withdrawal_id"`
	Chain              string           `json:"chain" dynamodbav:"chain" db:"chain"`
	AccountID          string           `json:"account_id" dynamodbav:"account_id" db:"account_id"`
	DestinationAddress string           `json:"destination_address" dynamodbav:"destination_address" db:"destination_address"`
	Amount             int64            `json:"amount" dynamodbav:"amount" db:"amount"`
	Fee                int64            `json:"fee" dynamodbav:"fee" db:"fee"`
	Status             WithdrawalStatus `json:"status" dynamodbav:"status" db:"status"`
	Note               string           `json:"note,omitempty" dynamodbav:"note,omitempty" db:"note"`
	TxSignature        string           `json:"tx_signature,omitempty" dynamodbav:"tx_signature,omitempty" db:"tx_signature"`
	CreatedAt          time.Time        `json:"created_at" dynamodbav:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" dynamodbav:"updated_at" db:"updated_at"`
}

// Net is the amount the signer transfers on-chain.
func (w *Withdrawal) Net() int64 {
	return w.Amount - w.Fee
}

// AuditEvent is one append-only entry of the audit log.
// Credit and Debit are the balance effect of the recorded transition.
type AuditEvent struct {
	EventID      string         `json:"event_id" dynamodbav:"event_id" db:"event_id"`
	Type         AuditEventType `json:"type" dynamodbav:"type" db:"type"`
	AccountID    string         `json:"account_id" dynamodbav:"account_id" db:"account_id"`
	Chain        string         `json:"chain" dynamodbav:"chain" db:"chain"`
	TxSignature  string         `json:"tx_signature,omitempty" dynamodbav:"tx_signature,omitempty" db:"tx_signature"`
	WithdrawalID string         `json:"withdrawal_id,omitempty" dynamodbav:"withdrawal_id,omitempty" db:"withdrawal_id"`
	Debit        int64          `json:"debit,omitempty" dynamodbav:"debit,omitempty" db:"debit"`
	Credit       int64          `json:"credit,omitempty" dynamodbav:"credit,omitempty" db:"credit"`
	Note         string         `json:"note,omitempty" dynamodbav:"note,omitempty" db:"note"`
	CreatedAt    time.Time      `json:"created_at" dynamodbav:"created_at" db:"created_at"`
}

// AuditFilter selects audit events by exactly one key.
type AuditFilter struct {
	AccountID    string
	TxSignature  string
	WithdrawalID string
	Limit        int32
}

// HistoryKind discriminates HistoryEntry.
type HistoryKind string

const (
	HistoryDeposit    HistoryKind = "deposit"
	HistoryWithdrawal HistoryKind = "withdrawal"
)

// HistoryEntry is either a Deposit or a Withdrawal of an account.
type HistoryEntry struct {
	Kind       HistoryKind
	Deposit    *Deposit
	Withdrawal *Withdrawal
}

// ID returns the time-ordered identifier of the underlying record.
func (e HistoryEntry) ID() string {
	if e.Kind == HistoryDeposit {
		return e.Deposit.DepositID
	}
	return e.Withdrawal.WithdrawalID
}

// Chain returns the chain of the underlying record.
func (e HistoryEntry) Chain() string {
	if e.Kind == HistoryDeposit {
		return e.Deposit.Chain
	}
	return e.Withdrawal.Chain
}

// At returns the insertion time of the underlying record.
func (e HistoryEntry) At() time.Time {
	if e.Kind == HistoryDeposit {
		return e.Deposit.CreditedAt
	}
	return e.Withdrawal.CreatedAt
}

// BridgeStats aggregates the ledger rows of one chain.
// WithdrawnTotal is the sum of debited amounts, fees included.
type BridgeStats struct {
	Chain             string `db:"chain"`
	DepositCount      int64  `db:"deposit_count"`
	DepositedTotal    int64  `db:"deposited_total"`
	WithdrawalCount   int64  `db:"withdrawal_count"`
	WithdrawnTotal    int64  `db:"withdrawn_total"`
	QueuedWithdrawals int64  `db:"queued_withdrawals"`
	SentWithdrawals   int64  `db:"sent_withdrawals"`
	FailedWithdrawals int64  `db:"failed_withdrawals"`
}

// AddWithdrawal counts w into the totals.
func (s *BridgeStats) AddWithdrawal(w *Withdrawal) {
	s.WithdrawalCount++
	s.WithdrawnTotal += w.Amount
	switch w.Status {
	case QUEUED:
		s.QueuedWithdrawals++
	case SENT:
		s.SentWithdrawals++
	case FAILED:
		s.FailedWithdrawals++
	}
}
