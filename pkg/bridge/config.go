package bridge

import (
	"errors"
	"fmt"
	"time"

	"github.com/chris/custodial-bridge/pkg/chain"
)

// ChainConfig holds the policy of one bridged chain. Amounts are integer base units.
type ChainConfig struct {
	Name           string
	Kind           string
	Mint           string
	ReserveAddress string
	Decimals       int32

	MinWithdrawal      int64
	MaxWithdrawal      int64
	WithdrawalFee      int64
	MinDeposit         int64
	WithdrawalCooldown time.Duration
	Confirmations      uint64
}

// Validate checks the limits are consistent.
func (c ChainConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("chain name is required"))
	}
	if c.Mint == "" {
		errs = append(errs, fmt.Errorf("chain %s: mint is required", c.Name))
	}
	if c.ReserveAddress == "" {
		errs = append(errs, fmt.Errorf("chain %s: reserve address is required", c.Name))
	}
	if c.MinWithdrawal <= 0 {
		errs = append(errs, fmt.Errorf("chain %s: min withdrawal must be positive", c.Name))
	}
	if c.MaxWithdrawal < c.MinWithdrawal {
		errs = append(errs, fmt.Errorf("chain %s: max withdrawal below min withdrawal", c.Name))
	}
	if c.WithdrawalFee < 0 {
		errs = append(errs, fmt.Errorf("chain %s: withdrawal fee must not be negative", c.Name))
	}
	if c.WithdrawalFee >= c.MaxWithdrawal {
		errs = append(errs, fmt.Errorf("chain %s: withdrawal fee must be below max withdrawal", c.Name))
	}
	if c.MinDeposit < 0 {
		errs = append(errs, fmt.Errorf("chain %s: min deposit must not be negative", c.Name))
	}
	return errors.Join(errs...)
}

// Chain is a configured chain with the adapter used to query it.
type Chain struct {
	Config  ChainConfig
	Adapter chain.Adapter
}
