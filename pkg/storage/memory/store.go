// Package memory is an in-process Storage used for local runs and tests.
// A single mutex serialises every operation, which makes each multi-record
// change atomic in the same way a database transaction would.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
	"github.com/google/uuid"
)

type walletKey struct {
	chain string
	value string
}

// Store implements storage.Storage in memory.
type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	accounts    map[string]*models.Account
	byAccount   map[walletKey]*models.WalletBinding
	byAddress   map[walletKey]*models.WalletBinding
	deposits    map[string]*models.Deposit
	depositLog  []string
	withdrawals map[string]*models.Withdrawal
	withdrawLog []string
	audit       []models.AuditEvent
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		accounts:    make(map[string]*models.Account),
		byAccount:   make(map[walletKey]*models.WalletBinding),
		byAddress:   make(map[walletKey]*models.WalletBinding),
		deposits:    make(map[string]*models.Deposit),
		withdrawals: make(map[string]*models.Withdrawal),
	}
}

var _ storage.Storage = (*Store)(nil)

func (s *Store) GetAccount(_ context.Context, accountID string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *Store) GetWalletBinding(_ context.Context, accountID, chain string) (*models.WalletBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byAccount[walletKey{chain, accountID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (s *Store) FindWalletOwner(_ context.Context, chain, address string) (*models.WalletBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byAddress[walletKey{chain, address}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (s *Store) GetDeposit(_ context.Context, txSignature string) (*models.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deposits[txSignature]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (s *Store) ListDepositsByAccount(_ context.Context, accountID string, limit int32) ([]models.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Deposit
	for _, sig := range s.depositLog {
		if d := s.deposits[sig]; d.AccountID == accountID {
			out = append(out, *d)
		}
	}
	return tail(out, limit), nil
}

func (s *Store) CreditDeposit(_ context.Context, deposit *models.Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deposits[deposit.TxSignature]; ok {
		return storage.ErrDuplicateDeposit
	}
	accountKey := walletKey{deposit.Chain, deposit.AccountID}
	addressKey := walletKey{deposit.Chain, deposit.SenderAddress}
	if b, ok := s.byAccount[accountKey]; ok && b.Address != deposit.SenderAddress {
		return storage.ErrWalletMismatch
	}
	if b, ok := s.byAddress[addressKey]; ok && b.AccountID != deposit.AccountID {
		return storage.ErrWalletClaimed
	}

	now := s.now()
	if deposit.DepositID == "" {
		deposit.DepositID = newID()
	}
	if deposit.CreditedAt.IsZero() {
		deposit.CreditedAt = now
	}

	if _, ok := s.byAccount[accountKey]; !ok {
		b := &models.WalletBinding{AccountID: deposit.AccountID, Chain: deposit.Chain, Address: deposit.SenderAddress, BoundAt: now}
		s.byAccount[accountKey] = b
		s.byAddress[addressKey] = b
	}

	a, ok := s.accounts[deposit.AccountID]
	if !ok {
		a = &models.Account{AccountID: deposit.AccountID, CreatedAt: now}
		s.accounts[deposit.AccountID] = a
	}
	a.Balance += deposit.Amount
	a.Version++
	a.UpdatedAt = now

	d := *deposit
	s.deposits[d.TxSignature] = &d
	s.depositLog = append(s.depositLog, d.TxSignature)
	s.audit = append(s.audit, models.AuditEvent{
		EventID:     newID(),
		Type:        models.DepositCredited,
		AccountID:   d.AccountID,
		Chain:       d.Chain,
		TxSignature: d.TxSignature,
		Credit:      d.Amount,
		Note:        "Deposit from " + d.SenderAddress,
		CreatedAt:   now,
	})
	return nil
}

func (s *Store) GetWithdrawal(_ context.Context, withdrawalID string) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.withdrawals[withdrawalID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *w
	return &c, nil
}

func (s *Store) ListWithdrawalsByAccount(_ context.Context, accountID string, limit int32) ([]models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Withdrawal
	for _, id := range s.withdrawLog {
		if w := s.withdrawals[id]; w.AccountID == accountID {
			out = append(out, *w)
		}
	}
	return tail(out, limit), nil
}

func (s *Store) ListWithdrawalsByStatus(_ context.Context, status models.WithdrawalStatus, createdBefore time.Time, limit int32) ([]models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Withdrawal
	for _, id := range s.withdrawLog {
		w := s.withdrawals[id]
		if w.Status != status || (!createdBefore.IsZero() && !w.CreatedAt.Before(createdBefore)) {
			continue
		}
		out = append(out, *w)
		if limit > 0 && len(out) == int(limit) {
			break
		}
	}
	return out, nil
}

func (s *Store) CreateWithdrawal(_ context.Context, w *models.Withdrawal, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a, ok := s.accounts[w.AccountID]
	if !ok || a.Balance < w.Amount {
		return storage.ErrInsufficientFunds
	}
	if cooldown > 0 && a.LastWithdrawalAt != nil && now.Sub(*a.LastWithdrawalAt) < cooldown {
		return storage.ErrCooldownActive
	}

	if w.WithdrawalID == "" {
		w.WithdrawalID = newID()
	}
	w.Status = models.QUEUED
	w.CreatedAt = now
	w.UpdatedAt = now

	a.Balance -= w.Amount
	a.Version++
	a.UpdatedAt = now
	a.LastWithdrawalAt = &now

	c := *w
	s.withdrawals[c.WithdrawalID] = &c
	s.withdrawLog = append(s.withdrawLog, c.WithdrawalID)
	s.audit = append(s.audit, models.AuditEvent{
		EventID:      newID(),
		Type:         models.WithdrawalQueued,
		AccountID:    c.AccountID,
		Chain:        c.Chain,
		WithdrawalID: c.WithdrawalID,
		Debit:        c.Amount,
		Note:         "Withdrawal to " + c.DestinationAddress,
		CreatedAt:    now,
	})
	return nil
}

func (s *Store) CompleteWithdrawal(_ context.Context, withdrawalID, txSignature string) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.withdrawals[withdrawalID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if w.Status != models.QUEUED {
		return nil, storage.ErrWithdrawalNotQueued
	}

	now := s.now()
	w.Status = models.SENT
	w.TxSignature = txSignature
	w.UpdatedAt = now
	s.audit = append(s.audit, models.AuditEvent{
		EventID:      newID(),
		Type:         models.WithdrawalSent,
		AccountID:    w.AccountID,
		Chain:        w.Chain,
		TxSignature:  txSignature,
		WithdrawalID: w.WithdrawalID,
		CreatedAt:    now,
	})
	c := *w
	return &c, nil
}

func (s *Store) FailWithdrawal(_ context.Context, withdrawalID, note string) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.withdrawals[withdrawalID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if w.Status != models.QUEUED {
		return nil, storage.ErrWithdrawalNotQueued
	}
	a, ok := s.accounts[w.AccountID]
	if !ok {
		return nil, errors.New("withdrawal account missing")
	}

	now := s.now()
	w.Status = models.FAILED
	w.Note = note
	w.UpdatedAt = now
	a.Balance += w.Amount
	a.Version++
	a.UpdatedAt = now
	s.audit = append(s.audit, models.AuditEvent{
		EventID:      newID(),
		Type:         models.WithdrawalFailed,
		AccountID:    w.AccountID,
		Chain:        w.Chain,
		WithdrawalID: w.WithdrawalID,
		Credit:       w.Amount,
		Note:         note,
		CreatedAt:    now,
	})
	c := *w
	return &c, nil
}

func (s *Store) QueryAudit(_ context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	if filter.AccountID == "" && filter.TxSignature == "" && filter.WithdrawalID == "" {
		return nil, errors.New("audit query requires an account, signature or withdrawal filter")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AuditEvent
	for _, e := range s.audit {
		switch {
		case filter.AccountID != "" && e.AccountID != filter.AccountID:
			continue
		case filter.TxSignature != "" && e.TxSignature != filter.TxSignature:
			continue
		case filter.WithdrawalID != "" && e.WithdrawalID != filter.WithdrawalID:
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == int(filter.Limit) {
			break
		}
	}
	return out, nil
}

// TotalBalance sums every account balance.
func (s *Store) TotalBalance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, a := range s.accounts {
		total += a.Balance
	}
	return total
}

func (s *Store) ChainStats(_ context.Context, chain string) (*models.BridgeStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.BridgeStats{Chain: chain}
	for _, d := range s.deposits {
		if d.Chain == chain {
			stats.DepositCount++
			stats.DepositedTotal += d.Amount
		}
	}
	for _, w := range s.withdrawals {
		if w.Chain == chain {
			stats.AddWithdrawal(w)
		}
	}
	return stats, nil
}

func tail[T any](items []T, limit int32) []T {
	if limit > 0 && len(items) > int(limit) {
		return items[len(items)-int(limit):]
	}
	return items
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
