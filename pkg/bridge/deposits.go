package bridge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/chain"
	"github.com/chris/custodial-bridge/pkg/metrics"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
)

// VerifyAndCredit checks that txSignature moved the canonical token from the
// account's wallet into the reserve and credits the account exactly once.
// Resubmitting a signature the account already credited returns the original
// deposit.
func (s *Service) VerifyAndCredit(ctx context.Context, chainName, accountID, txSignature string) (*models.Deposit, error) {
	d, err := s.verifyAndCredit(ctx, chainName, accountID, txSignature)
	if err != nil {
		metrics.DepositsTotal.WithLabelValues(s.chainLabel(chainName), string(CodeOf(err))).Inc()
		return nil, err
	}
	return d, nil
}

func (s *Service) verifyAndCredit(ctx context.Context, chainName, accountID, txSignature string) (*models.Deposit, error) {
	c, err := s.chain(chainName)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, newError(CodeInvalidRequest, "account id is required")
	}
	sig, err := c.Adapter.NormalizeSignature(txSignature)
	if err != nil {
		return nil, wrapError(CodeInvalidRequest, "malformed transaction signature", err)
	}

	log := s.log.With(
		zap.String("chain", chainName),
		zap.String("account_id", accountID),
		zap.String("tx_signature", sig))

	if existing, err := s.existingDeposit(ctx, chainName, accountID, sig); existing != nil || err != nil {
		if err != nil {
			return nil, reject(log, err)
		}
		metrics.DepositsTotal.WithLabelValues(chainName, "replayed").Inc()
		return existing, nil
	}

	transfer, rerr := s.lookup(ctx, c, sig)
	if rerr != nil {
		return nil, reject(log, rerr)
	}

	if transfer.MintID != c.Config.Mint {
		return nil, reject(log, newError(CodeWrongAsset,
			fmt.Sprintf("transaction does not transfer the canonical token %s", c.Config.Mint)),
			zap.String("mint", transfer.MintID))
	}
	if transfer.RecipientAddress != c.Config.ReserveAddress {
		return nil, reject(log, newError(CodeWrongDestination,
			fmt.Sprintf("transfer recipient is not the reserve address %s", c.Config.ReserveAddress)),
			zap.String("recipient", transfer.RecipientAddress))
	}
	if transfer.Amount <= 0 {
		return nil, reject(log, newError(CodeTransactionFailed, "transfer carries no amount"))
	}
	if transfer.Amount < c.Config.MinDeposit {
		return nil, reject(log, newError(CodeAmountOutOfRange,
			fmt.Sprintf("deposit of %d is below the minimum of %d", transfer.Amount, c.Config.MinDeposit)))
	}
	if err := s.checkOwnership(ctx, chainName, accountID, transfer.SenderAddress); err != nil {
		return nil, reject(log, err, zap.String("sender", transfer.SenderAddress))
	}

	deposit := &models.Deposit{
		TxSignature:   sig,
		Chain:         chainName,
		AccountID:     accountID,
		Amount:        transfer.Amount,
		Mint:          transfer.MintID,
		SenderAddress: transfer.SenderAddress,
		Slot:          transfer.Slot,
		BlockTime:     transfer.FinalizedAt,
	}
	err = s.store.CreditDeposit(ctx, deposit)
	switch {
	case err == nil:
		metrics.DepositsTotal.WithLabelValues(chainName, "credited").Inc()
		metrics.DepositedAmount.WithLabelValues(chainName).Add(float64(deposit.Amount))
		log.Info("deposit credited",
			zap.String("deposit_id", deposit.DepositID),
			zap.Int64("amount", deposit.Amount),
			zap.String("sender", deposit.SenderAddress))
		return deposit, nil

	case errors.Is(err, storage.ErrDuplicateDeposit):
		// Lost the race against a concurrent submission of the same signature.
		existing, xerr := s.existingDeposit(ctx, chainName, accountID, sig)
		if xerr != nil {
			return nil, reject(log, xerr)
		}
		if existing == nil {
			return nil, reject(log, wrapError(CodeIntegrityViolation,
				"deposit reported as duplicate but no record exists", err))
		}
		return existing, nil

	case errors.Is(err, storage.ErrConflict):
		// A concurrent write to the same records may have been this deposit.
		existing, xerr := s.existingDeposit(ctx, chainName, accountID, sig)
		if xerr != nil {
			return nil, reject(log, xerr)
		}
		if existing != nil {
			return existing, nil
		}
		return nil, reject(log, wrapError(CodeConflict, "deposit collided with concurrent ledger writes", err))

	case errors.Is(err, storage.ErrWalletMismatch), errors.Is(err, storage.ErrWalletClaimed):
		return nil, reject(log, wrapError(CodeOwnershipMismatch,
			"sender wallet is not the wallet bound to this account", err))
	}
	return nil, reject(log, internal("failed to credit deposit", err))
}

// existingDeposit returns the recorded deposit of sig when it belongs to the
// account, nil when none is recorded, and DuplicateDeposit otherwise.
func (s *Service) existingDeposit(ctx context.Context, chainName, accountID, sig string) (*models.Deposit, *Error) {
	d, err := s.store.GetDeposit(ctx, sig)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal("failed to read deposit", err)
	}
	if d.AccountID != accountID || d.Chain != chainName {
		return nil, newError(CodeDuplicateDeposit, "transaction was already credited to another account")
	}
	return d, nil
}

// lookup queries the chain outside of any store transaction. The shared
// query is detached from the cancellation of whichever caller started it, so
// waiting callers are not failed by another request going away.
func (s *Service) lookup(ctx context.Context, c Chain, sig string) (*models.ChainTransfer, *Error) {
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.lookups.Do(c.Config.Name+":"+sig, func() (interface{}, error) {
		return c.Adapter.Lookup(shared, sig), nil
	})
	res := v.(chain.Result)

	switch res.Status {
	case chain.Found:
		return res.Transfer, nil
	case chain.NotFound, chain.NotFinalized:
		return nil, newError(CodeChainNotFound, "transaction not found or not finalized yet: "+res.Reason)
	case chain.Failed:
		return nil, newError(CodeTransactionFailed, res.Reason)
	case chain.Unavailable:
		return nil, wrapError(CodeChainUnavailable, "chain query failed", res.Err)
	}
	return nil, newError(CodeChainUnavailable, "chain query returned no result")
}

// checkOwnership rejects a sender that differs from the account's bound
// wallet or that is bound to another account. The store enforces the same
// rules again atomically when the deposit is credited.
func (s *Service) checkOwnership(ctx context.Context, chainName, accountID, sender string) *Error {
	if sender == "" {
		return newError(CodeTransactionFailed, "sender could not be determined")
	}

	binding, err := s.store.GetWalletBinding(ctx, accountID, chainName)
	switch {
	case err == nil:
		if binding.Address != sender {
			return newError(CodeOwnershipMismatch, "sender wallet is not the wallet bound to this account")
		}
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return internal("failed to read wallet binding", err)
	}

	owner, err := s.store.FindWalletOwner(ctx, chainName, sender)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return internal("failed to read wallet owner", err)
	case owner.AccountID != accountID:
		return newError(CodeOwnershipMismatch, "sender wallet is bound to another account")
	}
	return nil
}
