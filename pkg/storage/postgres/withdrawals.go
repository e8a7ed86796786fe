package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
	"github.com/jmoiron/sqlx"
)

const withdrawalColumns = `withdrawal_id, chain, account_id, destination_address, amount, fee, status, note, tx_signature, created_at, updated_at`

func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := s.db.GetContext(ctx, &w, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE withdrawal_id = $1`, withdrawalID)
	if err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *Store) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := s.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM (
			SELECT `+withdrawalColumns+` FROM withdrawals
			WHERE account_id = $1
			ORDER BY withdrawal_id DESC
			LIMIT NULLIF($2, 0)
		) recent
		ORDER BY withdrawal_id`, accountID, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}

func (s *Store) ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, createdBefore time.Time, limit int32) ([]models.Withdrawal, error) {
	var cutoff sql.NullTime
	if !createdBefore.IsZero() {
		cutoff = sql.NullTime{Time: createdBefore.UTC(), Valid: true}
	}
	var withdrawals []models.Withdrawal
	err := s.db.SelectContext(ctx, &withdrawals, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE status = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at, withdrawal_id
		LIMIT NULLIF($3, 0)`, string(status), cutoff, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals by status: %w", err)
	}
	return withdrawals, nil
}

// CreateWithdrawal locks the account row, debits the full amount and stores the
// queued withdrawal with its audit event.
func (s *Store) CreateWithdrawal(ctx context.Context, w *models.Withdrawal, cooldown time.Duration) error {
	now := s.now()
	if w.WithdrawalID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate withdrawal ID: %w", err)
		}
		w.WithdrawalID = id
	}
	w.Status = models.QUEUED
	w.CreatedAt = now
	w.UpdatedAt = now

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var account models.Account
		err := tx.GetContext(ctx, &account, `
			SELECT account_id, balance, version, last_withdrawal_at, created_at, updated_at
			FROM accounts
			WHERE account_id = $1
			FOR UPDATE
		`, w.AccountID)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrInsufficientFunds
		}
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
		if account.Balance < w.Amount {
			return storage.ErrInsufficientFunds
		}
		if cooldown > 0 && account.LastWithdrawalAt != nil && now.Sub(*account.LastWithdrawalAt) < cooldown {
			return storage.ErrCooldownActive
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE accounts
			SET balance = balance - $2, version = version + 1, last_withdrawal_at = $3, updated_at = $3
			WHERE account_id = $1
		`, w.AccountID, w.Amount, now)
		if err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO withdrawals (`+withdrawalColumns+`)
			VALUES (:withdrawal_id, :chain, :account_id, :destination_address, :amount, :fee, :status, :note, :tx_signature, :created_at, :updated_at)
		`, w)
		if err != nil {
			return fmt.Errorf("failed to insert withdrawal: %w", err)
		}

		return appendAudit(ctx, tx, models.AuditEvent{
			Type:         models.WithdrawalQueued,
			AccountID:    w.AccountID,
			Chain:        w.Chain,
			WithdrawalID: w.WithdrawalID,
			Debit:        w.Amount,
			Note:         "Withdrawal to " + w.DestinationAddress,
			CreatedAt:    now,
		})
	})
}

// lockQueued loads the withdrawal row for update and checks it is still queued.
func lockQueued(ctx context.Context, tx *sqlx.Tx, withdrawalID string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := tx.GetContext(ctx, &w, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE withdrawal_id = $1 FOR UPDATE`, withdrawalID)
	if err != nil {
		return nil, notFound(err)
	}
	if w.Status != models.QUEUED {
		return nil, storage.ErrWithdrawalNotQueued
	}
	return &w, nil
}

func (s *Store) CompleteWithdrawal(ctx context.Context, withdrawalID, txSignature string) (*models.Withdrawal, error) {
	now := s.now()
	var result *models.Withdrawal
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		w, err := lockQueued(ctx, tx, withdrawalID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE withdrawals SET status = $2, tx_signature = $3, updated_at = $4
			WHERE withdrawal_id = $1
		`, withdrawalID, string(models.SENT), txSignature, now)
		if err != nil {
			return fmt.Errorf("failed to mark withdrawal sent: %w", err)
		}
		w.Status = models.SENT
		w.TxSignature = txSignature
		w.UpdatedAt = now
		result = w

		return appendAudit(ctx, tx, models.AuditEvent{
			Type:         models.WithdrawalSent,
			AccountID:    w.AccountID,
			Chain:        w.Chain,
			TxSignature:  txSignature,
			WithdrawalID: w.WithdrawalID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) FailWithdrawal(ctx context.Context, withdrawalID, note string) (*models.Withdrawal, error) {
	now := s.now()
	var result *models.Withdrawal
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		w, err := lockQueued(ctx, tx, withdrawalID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE withdrawals SET status = $2, note = $3, updated_at = $4
			WHERE withdrawal_id = $1
		`, withdrawalID, string(models.FAILED), note, now)
		if err != nil {
			return fmt.Errorf("failed to mark withdrawal failed: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE accounts SET balance = balance + $2, version = version + 1, updated_at = $3
			WHERE account_id = $1
		`, w.AccountID, w.Amount, now)
		if err != nil {
			return fmt.Errorf("failed to credit account back: %w", err)
		}
		w.Status = models.FAILED
		w.Note = note
		w.UpdatedAt = now
		result = w

		return appendAudit(ctx, tx, models.AuditEvent{
			Type:         models.WithdrawalFailed,
			AccountID:    w.AccountID,
			Chain:        w.Chain,
			WithdrawalID: w.WithdrawalID,
			Credit:       w.Amount,
			Note:         note,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
