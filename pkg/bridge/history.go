package bridge

import (
	"context"
	"errors"

	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
)

// MaxAuditLimit caps one audit query.
const MaxAuditLimit = 1000

// GetHistory returns the most recent deposits and withdrawals of an account
// in insertion order. A zero limit means DefaultHistoryLimit; larger limits
// are capped at MaxHistoryLimit.
func (s *Service) GetHistory(ctx context.Context, accountID string, limit int) ([]models.HistoryEntry, error) {
	if accountID == "" {
		return nil, newError(CodeInvalidRequest, "account id is required")
	}
	n, err := clampLimit(limit)
	if err != nil {
		return nil, err
	}

	deposits, err := s.store.ListDepositsByAccount(ctx, accountID, n)
	if err != nil {
		return nil, internal("failed to list deposits", err)
	}
	withdrawals, err := s.store.ListWithdrawalsByAccount(ctx, accountID, n)
	if err != nil {
		return nil, internal("failed to list withdrawals", err)
	}

	// Both lists are oldest first and IDs are time ordered.
	entries := make([]models.HistoryEntry, 0, len(deposits)+len(withdrawals))
	i, j := 0, 0
	for i < len(deposits) || j < len(withdrawals) {
		if j == len(withdrawals) || (i < len(deposits) && deposits[i].DepositID < withdrawals[j].WithdrawalID) {
			entries = append(entries, models.HistoryEntry{Kind: models.HistoryDeposit, Deposit: &deposits[i]})
			i++
			continue
		}
		entries = append(entries, models.HistoryEntry{Kind: models.HistoryWithdrawal, Withdrawal: &withdrawals[j]})
		j++
	}
	if len(entries) > int(n) {
		entries = entries[len(entries)-int(n):]
	}
	return entries, nil
}

// QueryAudit returns audit events for exactly one of account, transaction
// signature or withdrawal, oldest first.
func (s *Service) QueryAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	keys := 0
	for _, k := range []string{filter.AccountID, filter.TxSignature, filter.WithdrawalID} {
		if k != "" {
			keys++
		}
	}
	if keys != 1 {
		return nil, newError(CodeInvalidRequest, "exactly one of account_id, tx_signature or withdrawal_id is required")
	}
	switch {
	case filter.Limit < 0:
		return nil, newError(CodeInvalidRequest, "limit must not be negative")
	case filter.Limit == 0 || filter.Limit > MaxAuditLimit:
		filter.Limit = MaxAuditLimit
	}

	events, err := s.store.QueryAudit(ctx, filter)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.AuditEvent{}, nil
	}
	if err != nil {
		return nil, internal("failed to query audit log", err)
	}
	return events, nil
}

// BridgeStats returns the deposit and withdrawal totals of a configured chain.
func (s *Service) BridgeStats(ctx context.Context, chainName string) (*models.BridgeStats, error) {
	if _, err := s.chain(chainName); err != nil {
		return nil, err
	}
	stats, err := s.store.ChainStats(ctx, chainName)
	if err != nil {
		return nil, internal("failed to read chain stats", err)
	}
	return stats, nil
}
