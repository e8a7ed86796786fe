package mapping

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/models"
)

// FormatAmount renders base units as a decimal token amount, e.g. 50000 with
// 6 decimals as "0.05".
func FormatAmount(units int64, decimals int32) string {
	return decimal.New(units, -decimals).String()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToApiBridgeInfo converts a chain configuration to the public BridgeInfo.
func ToApiBridgeInfo(cfg bridge.ChainConfig) *api.BridgeInfo {
	return &api.BridgeInfo{
		Chain:                     cfg.Name,
		Kind:                      cfg.Kind,
		Mint:                      cfg.Mint,
		ReserveAddress:            cfg.ReserveAddress,
		Decimals:                  cfg.Decimals,
		MinWithdrawal:             FormatAmount(cfg.MinWithdrawal, cfg.Decimals),
		MaxWithdrawal:             FormatAmount(cfg.MaxWithdrawal, cfg.Decimals),
		WithdrawalFee:             FormatAmount(cfg.WithdrawalFee, cfg.Decimals),
		MinDeposit:                FormatAmount(cfg.MinDeposit, cfg.Decimals),
		WithdrawalCooldownSeconds: int64(cfg.WithdrawalCooldown.Seconds()),
		Confirmations:             int64(cfg.Confirmations),
	}
}

// ToApiBridgeStats converts the ledger totals of a chain to the API model.
func ToApiBridgeStats(s *models.BridgeStats, decimals int32) *api.BridgeStats {
	return &api.BridgeStats{
		Chain:             s.Chain,
		DepositCount:      s.DepositCount,
		DepositedAmount:   s.DepositedTotal,
		DepositedDecimal:  FormatAmount(s.DepositedTotal, decimals),
		WithdrawalCount:   s.WithdrawalCount,
		WithdrawnAmount:   s.WithdrawnTotal,
		WithdrawnDecimal:  FormatAmount(s.WithdrawnTotal, decimals),
		QueuedWithdrawals: s.QueuedWithdrawals,
		SentWithdrawals:   s.SentWithdrawals,
		FailedWithdrawals: s.FailedWithdrawals,
	}
}

// ToApiDeposit converts a domain Deposit model to an API Deposit model.
func ToApiDeposit(d *models.Deposit, decimals int32) *api.Deposit {
	return &api.Deposit{
		DepositId:     d.DepositID,
		TxSignature:   d.TxSignature,
		Chain:         d.Chain,
		AccountId:     d.AccountID,
		Amount:        d.Amount,
		AmountDecimal: FormatAmount(d.Amount, decimals),
		Mint:          d.Mint,
		SenderAddress: d.SenderAddress,
		Slot:          int64(d.Slot),
		BlockTime:     d.BlockTime,
		CreditedAt:    d.CreditedAt,
	}
}

// ToApiWithdrawal converts a domain Withdrawal model to an API Withdrawal model.
// AmountDecimal is the net amount the destination receives.
func ToApiWithdrawal(w *models.Withdrawal, decimals int32) *api.Withdrawal {
	return &api.Withdrawal{
		WithdrawalId:       w.WithdrawalID,
		Chain:              w.Chain,
		AccountId:          w.AccountID,
		DestinationAddress: w.DestinationAddress,
		Amount:             w.Amount,
		Fee:                w.Fee,
		NetAmount:          w.Net(),
		AmountDecimal:      FormatAmount(w.Net(), decimals),
		Status:             api.WithdrawalStatus(w.Status),
		TxSignature:        optional(w.TxSignature),
		Note:               optional(w.Note),
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// ToApiHistoryEntry converts one history entry.
func ToApiHistoryEntry(e models.HistoryEntry, decimals int32) api.HistoryEntry {
	if e.Kind == models.HistoryDeposit {
		return api.HistoryEntry{
			Kind:    api.HistoryEntryKindDeposit,
			Deposit: ToApiDeposit(e.Deposit, decimals),
		}
	}
	return api.HistoryEntry{
		Kind:       api.HistoryEntryKindWithdrawal,
		Withdrawal: ToApiWithdrawal(e.Withdrawal, decimals),
	}
}

// ToApiAuditEvent converts a domain AuditEvent model to an API AuditEvent model.
func ToApiAuditEvent(e *models.AuditEvent) api.AuditEvent {
	return api.AuditEvent{
		EventId:      e.EventID,
		Type:         api.AuditEventType(e.Type),
		AccountId:    e.AccountID,
		Chain:        e.Chain,
		TxSignature:  optional(e.TxSignature),
		WithdrawalId: optional(e.WithdrawalID),
		Debit:        e.Debit,
		Credit:       e.Credit,
		Note:         optional(e.Note),
		CreatedAt:    e.CreatedAt,
	}
}

// ToDomainOutcome converts a signer outcome report.
func ToDomainOutcome(req *api.OutcomeRequest) bridge.Outcome {
	out := bridge.Outcome{Status: models.WithdrawalStatus(req.Status)}
	if req.TxSignature != nil {
		out.TxSignature = *req.TxSignature
	}
	if req.Note != nil {
		out.Note = *req.Note
	}
	return out
}

// ToApiError converts a service error to the wire error body. Errors that
// carry no bridge code are reported as Internal without their detail.
func ToApiError(err error) *api.Error {
	var be *bridge.Error
	if errors.As(err, &be) {
		return &api.Error{Code: string(be.Code), Message: be.Message, Retryable: be.Retryable}
	}
	return &api.Error{Code: string(bridge.CodeInternal), Message: "internal error", Retryable: false}
}
