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

const depositColumns = `deposit_id, tx_signature, chain, account_id, amount, mint, sender_address, slot, block_time, credited_at`

func (s *Store) GetDeposit(ctx context.Context, txSignature string) (*models.Deposit, error) {
	var deposit models.Deposit
	err := s.db.GetContext(ctx, &deposit, `SELECT `+depositColumns+` FROM deposits WHERE tx_signature = $1`, txSignature)
	if err != nil {
		return nil, notFound(err)
	}
	return &deposit, nil
}

func (s *Store) ListDepositsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Deposit, error) {
	var deposits []models.Deposit
	err := s.db.SelectContext(ctx, &deposits, `
		SELECT * FROM (
			SELECT `+depositColumns+` FROM deposits
			WHERE account_id = $1
			ORDER BY deposit_id DESC
			LIMIT NULLIF($2, 0)
		) recent
		ORDER BY deposit_id`, accountID, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// CreditDeposit records the deposit, binds or checks the sender wallet, credits
// the account and appends the audit event in one transaction.
func (s *Store) CreditDeposit(ctx context.Context, deposit *models.Deposit) error {
	now := s.now()
	if deposit.DepositID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate deposit ID: %w", err)
		}
		deposit.DepositID = id
	}
	if deposit.CreditedAt.IsZero() {
		deposit.CreditedAt = now
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO deposits (`+depositColumns+`)
			VALUES (:deposit_id, :tx_signature, :chain, :account_id, :amount, :mint, :sender_address, :slot, :block_time, :credited_at)
		`, deposit)
		if _, ok := uniqueConstraint(err); ok {
			return storage.ErrDuplicateDeposit
		}
		if err != nil {
			return fmt.Errorf("failed to insert deposit: %w", err)
		}

		if err := bindWallet(ctx, tx, deposit, now); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO accounts (account_id, balance, version, created_at, updated_at)
			VALUES ($1, $2, 1, $3, $3)
			ON CONFLICT (account_id) DO UPDATE
			SET balance = accounts.balance + EXCLUDED.balance,
			    version = accounts.version + 1,
			    updated_at = EXCLUDED.updated_at
		`, deposit.AccountID, deposit.Amount, now)
		if err != nil {
			return fmt.Errorf("failed to credit account: %w", err)
		}

		return appendAudit(ctx, tx, models.AuditEvent{
			Type:        models.DepositCredited,
			AccountID:   deposit.AccountID,
			Chain:       deposit.Chain,
			TxSignature: deposit.TxSignature,
			Credit:      deposit.Amount,
			Note:        "Deposit from " + deposit.SenderAddress,
			CreatedAt:   now,
		})
	})
}

// bindWallet creates the account's binding on the chain unless one exists,
// then compares the stored binding with the sender. The insert waits on any
// concurrent transaction holding either unique key, so the re-read sees the
// committed winner.
func bindWallet(ctx context.Context, tx *sqlx.Tx, deposit *models.Deposit, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_bindings (account_id, chain, address, bound_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, deposit.AccountID, deposit.Chain, deposit.SenderAddress, now)
	if err != nil {
		return fmt.Errorf("failed to bind wallet: %w", err)
	}

	var bound string
	err = tx.GetContext(ctx, &bound, `
		SELECT address FROM wallet_bindings
		WHERE account_id = $1 AND chain = $2
	`, deposit.AccountID, deposit.Chain)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// The insert was skipped and the account has no binding, so the
		// address belongs to another account.
		return storage.ErrWalletClaimed
	case err != nil:
		return fmt.Errorf("failed to read wallet binding: %w", err)
	case bound != deposit.SenderAddress:
		return storage.ErrWalletMismatch
	}
	return nil
}
