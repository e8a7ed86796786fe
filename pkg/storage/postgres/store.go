package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Store implements storage.Storage backed by PostgreSQL.
// Multi-record changes run inside one database transaction with row locks.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Open connects to PostgreSQL and, when migrate is set, applies pending
// migrations.
func Open(ctx context.Context, dsn string, migrate bool) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if !migrate {
		return New(db), nil
	}
	if err := Migrate(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// uniqueConstraint returns the name of the unique constraint err violated, if any.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// inTx runs fn inside a transaction and commits when it returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account
	err := s.db.GetContext(ctx, &account, `
		SELECT account_id, balance, version, last_withdrawal_at, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`, accountID)
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (s *Store) GetWalletBinding(ctx context.Context, accountID, chain string) (*models.WalletBinding, error) {
	var binding models.WalletBinding
	err := s.db.GetContext(ctx, &binding, `
		SELECT account_id, chain, address, bound_at
		FROM wallet_bindings
		WHERE account_id = $1 AND chain = $2
	`, accountID, chain)
	if err != nil {
		return nil, notFound(err)
	}
	return &binding, nil
}

func (s *Store) FindWalletOwner(ctx context.Context, chain, address string) (*models.WalletBinding, error) {
	var binding models.WalletBinding
	err := s.db.GetContext(ctx, &binding, `
		SELECT account_id, chain, address, bound_at
		FROM wallet_bindings
		WHERE chain = $1 AND address = $2
	`, chain, address)
	if err != nil {
		return nil, notFound(err)
	}
	return &binding, nil
}

const insertAudit = `
	INSERT INTO audit_events (event_id, type, account_id, chain, tx_signature, withdrawal_id, debit, credit, note, created_at)
	VALUES (:event_id, :type, :account_id, :chain, :tx_signature, :withdrawal_id, :debit, :credit, :note, :created_at)
`

func appendAudit(ctx context.Context, tx *sqlx.Tx, event models.AuditEvent) error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	event.EventID = id
	if _, err := tx.NamedExecContext(ctx, insertAudit, event); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}

func (s *Store) QueryAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	var column, value string
	switch {
	case filter.AccountID != "":
		column, value = "account_id", filter.AccountID
	case filter.TxSignature != "":
		column, value = "tx_signature", filter.TxSignature
	case filter.WithdrawalID != "":
		column, value = "withdrawal_id", filter.WithdrawalID
	default:
		return nil, errors.New("audit query requires an account, signature or withdrawal filter")
	}

	query := `
		SELECT event_id, type, account_id, chain, tx_signature, withdrawal_id, debit, credit, note, created_at
		FROM audit_events
		WHERE ` + column + ` = $1
		ORDER BY event_id`
	args := []any{value}
	if filter.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, filter.Limit)
	}

	var events []models.AuditEvent
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	return events, nil
}
