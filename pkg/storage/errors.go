package storage

import "errors"

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateDeposit is returned when a deposit with the same transaction signature was already recorded.
var ErrDuplicateDeposit = errors.New("deposit already recorded")

// ErrWalletMismatch is returned when the account already has a different wallet bound on the chain.
var ErrWalletMismatch = errors.New("account is bound to a different wallet")

// ErrWalletClaimed is returned when the wallet address is bound to another account.
var ErrWalletClaimed = errors.New("wallet is bound to another account")

// ErrInsufficientFunds is returned when an account balance does not cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCooldownActive is returned when the account withdrew more recently than the chain cooldown allows.
var ErrCooldownActive = errors.New("withdrawal cooldown active")

// ErrWithdrawalNotQueued is returned when a withdrawal transition is attempted out of a non-queued state.
var ErrWithdrawalNotQueued = errors.New("withdrawal not in queued state")

// ErrConflict is returned when a write kept colliding with concurrent writes to the same records.
// The write was not applied and may be retried.
var ErrConflict = errors.New("write conflicted with a concurrent transaction")
