package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/metrics"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
)

// Outcome is what the signer reports for a queued withdrawal.
type Outcome struct {
	Status      models.WithdrawalStatus
	TxSignature string
	Note        string
}

// RequestWithdrawal debits amount from the account and queues a withdrawal
// of amount minus the flat fee to destination. The signer is notified after
// the debit commits; a failed notification leaves the withdrawal queued for
// the reconciliation sweep.
func (s *Service) RequestWithdrawal(ctx context.Context, chainName, accountID, destination string, amount int64) (*models.Withdrawal, error) {
	w, err := s.requestWithdrawal(ctx, chainName, accountID, destination, amount)
	if err != nil {
		metrics.WithdrawalsTotal.WithLabelValues(s.chainLabel(chainName), string(CodeOf(err))).Inc()
		return nil, err
	}
	metrics.WithdrawalsTotal.WithLabelValues(chainName, "queued").Inc()
	return w, nil
}

func (s *Service) requestWithdrawal(ctx context.Context, chainName, accountID, destination string, amount int64) (*models.Withdrawal, error) {
	c, err := s.chain(chainName)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, newError(CodeInvalidRequest, "account id is required")
	}
	dest, err := c.Adapter.NormalizeAddress(destination)
	if err != nil {
		return nil, wrapError(CodeInvalidRequest, "invalid destination address", err)
	}

	cfg := c.Config
	if amount < cfg.MinWithdrawal || amount > cfg.MaxWithdrawal {
		return nil, newError(CodeAmountOutOfRange,
			fmt.Sprintf("amount must be between %d and %d", cfg.MinWithdrawal, cfg.MaxWithdrawal))
	}
	if amount <= cfg.WithdrawalFee {
		return nil, newError(CodeAmountOutOfRange,
			fmt.Sprintf("amount must exceed the withdrawal fee of %d", cfg.WithdrawalFee))
	}

	log := s.log.With(
		zap.String("chain", chainName),
		zap.String("account_id", accountID),
		zap.Int64("amount", amount))

	w := &models.Withdrawal{
		Chain:              chainName,
		AccountID:          accountID,
		DestinationAddress: dest,
		Amount:             amount,
		Fee:                cfg.WithdrawalFee,
		Status:             models.QUEUED,
	}
	err = s.store.CreateWithdrawal(ctx, w, cfg.WithdrawalCooldown)
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		return nil, reject(log, newError(CodeInsufficientBalance, "insufficient balance"))
	case errors.Is(err, storage.ErrCooldownActive):
		return nil, reject(log, newError(CodeWithdrawalCooldown,
			fmt.Sprintf("only one withdrawal per %s is allowed", cfg.WithdrawalCooldown)))
	case errors.Is(err, storage.ErrConflict):
		return nil, reject(log, wrapError(CodeConflict, "withdrawal collided with concurrent ledger writes", err))
	case err != nil:
		return nil, reject(log, internal("failed to queue withdrawal", err))
	}

	log.Info("withdrawal queued",
		zap.String("withdrawal_id", w.WithdrawalID),
		zap.Int64("fee", w.Fee),
		zap.String("destination", w.DestinationAddress))

	if err := s.scheduler.ScheduleWithdrawal(ctx, w); err != nil {
		metrics.ScheduleFailuresTotal.Inc()
		log.Error("CRITICAL: withdrawal queued but failed to hand to signer",
			zap.String("withdrawal_id", w.WithdrawalID),
			zap.Error(err))
	}
	return w, nil
}

// ReportOutcome moves a queued withdrawal to sent or failed. A failed
// withdrawal credits its amount back. Reporting the outcome a withdrawal
// already has returns it unchanged.
func (s *Service) ReportOutcome(ctx context.Context, withdrawalID string, outcome Outcome) (*models.Withdrawal, error) {
	if withdrawalID == "" {
		return nil, newError(CodeInvalidRequest, "withdrawal id is required")
	}

	log := s.log.With(
		zap.String("withdrawal_id", withdrawalID),
		zap.String("status", string(outcome.Status)))

	var (
		w   *models.Withdrawal
		err error
	)
	switch outcome.Status {
	case models.SENT:
		if outcome.TxSignature == "" {
			return nil, newError(CodeInvalidRequest, "a sent outcome requires the transaction signature")
		}
		w, err = s.store.CompleteWithdrawal(ctx, withdrawalID, outcome.TxSignature)
	case models.FAILED:
		w, err = s.store.FailWithdrawal(ctx, withdrawalID, outcome.Note)
	default:
		return nil, newError(CodeInvalidRequest, fmt.Sprintf("outcome must be %q or %q", models.SENT, models.FAILED))
	}

	switch {
	case err == nil:
		metrics.WithdrawalOutcomesTotal.WithLabelValues(w.Chain, string(w.Status)).Inc()
		log.Info("withdrawal outcome applied",
			zap.String("chain", w.Chain),
			zap.String("account_id", w.AccountID),
			zap.String("tx_signature", w.TxSignature))
		return w, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, newError(CodeNotFound, "withdrawal not found")
	case errors.Is(err, storage.ErrWithdrawalNotQueued):
		return s.repeatedOutcome(ctx, log, withdrawalID, outcome)
	case errors.Is(err, storage.ErrConflict):
		return nil, reject(log, wrapError(CodeConflict, "outcome collided with concurrent ledger writes", err))
	}
	return nil, reject(log, internal("failed to apply withdrawal outcome", err))
}

// repeatedOutcome resolves a transition refused because the withdrawal is no
// longer queued.
func (s *Service) repeatedOutcome(ctx context.Context, log *zap.Logger, withdrawalID string, outcome Outcome) (*models.Withdrawal, error) {
	current, err := s.store.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, reject(log, internal("failed to read withdrawal", err))
	}

	switch {
	case current.Status == models.QUEUED:
		return nil, reject(log, newError(CodeIntegrityViolation, "withdrawal refused a transition while queued"))
	case current.Status == outcome.Status && (current.Status != models.SENT || current.TxSignature == outcome.TxSignature):
		log.Info("repeated withdrawal outcome ignored")
		return current, nil
	}
	return nil, reject(log, newError(CodeInvalidTransition,
		fmt.Sprintf("withdrawal is already %s", current.Status)),
		zap.String("current_status", string(current.Status)))
}

// GetWithdrawal returns a withdrawal by ID.
func (s *Service) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	w, err := s.store.GetWithdrawal(ctx, withdrawalID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(CodeNotFound, "withdrawal not found")
	}
	if err != nil {
		return nil, internal("failed to read withdrawal", err)
	}
	return w, nil
}

// ListWithdrawals returns withdrawals in the given status, oldest first.
// It is the pull side of the signer hand-off.
func (s *Service) ListWithdrawals(ctx context.Context, status models.WithdrawalStatus, limit int) ([]models.Withdrawal, error) {
	switch status {
	case models.QUEUED, models.SENT, models.FAILED:
	default:
		return nil, newError(CodeInvalidRequest, fmt.Sprintf("unknown withdrawal status %q", status))
	}
	n, err := clampLimit(limit)
	if err != nil {
		return nil, err
	}
	ws, err := s.store.ListWithdrawalsByStatus(ctx, status, time.Time{}, n)
	if err != nil {
		return nil, internal("failed to list withdrawals", err)
	}
	return ws, nil
}

// RescheduleStale hands withdrawals queued for longer than staleAfter to the
// signer again and returns how many were handed over.
func (s *Service) RescheduleStale(ctx context.Context, staleAfter time.Duration, limit int32) (int, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	stale, err := s.store.ListWithdrawalsByStatus(ctx, models.QUEUED, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale withdrawals: %w", err)
	}

	var (
		scheduled int
		errs      []error
	)
	for i := range stale {
		w := &stale[i]
		if err := s.scheduler.ScheduleWithdrawal(ctx, w); err != nil {
			metrics.ScheduleFailuresTotal.Inc()
			s.log.Error("failed to reschedule withdrawal",
				zap.String("withdrawal_id", w.WithdrawalID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("withdrawal %s: %w", w.WithdrawalID, err))
			continue
		}
		scheduled++
		s.log.Info("rescheduled stale withdrawal",
			zap.String("withdrawal_id", w.WithdrawalID),
			zap.Time("created_at", w.CreatedAt))
	}
	return scheduled, errors.Join(errs...)
}
