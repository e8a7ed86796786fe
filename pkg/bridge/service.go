// Package bridge verifies deposits and manages withdrawals between an
// external chain and the internal account ledger.
package bridge

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chris/custodial-bridge/pkg/scheduler"
	"github.com/chris/custodial-bridge/pkg/storage"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// Service is the bridge core. It holds no balance or status state of its
// own; every decision re-reads the store.
type Service struct {
	store     storage.Storage
	scheduler scheduler.Scheduler
	chains    map[string]Chain
	log       *zap.Logger

	// lookups collapses concurrent chain queries for the same signature.
	lookups singleflight.Group
}

// NewService validates the chain configurations and canonicalises their
// mint and reserve addresses with each chain's adapter.
func NewService(store storage.Storage, sched scheduler.Scheduler, log *zap.Logger, chains ...Chain) (*Service, error) {
	if len(chains) == 0 {
		return nil, errors.New("at least one chain must be configured")
	}
	if sched == nil {
		sched = scheduler.NoOp{}
	}

	s := &Service{
		store:     store,
		scheduler: sched,
		chains:    make(map[string]Chain, len(chains)),
		log:       log,
	}
	for _, c := range chains {
		if err := c.Config.Validate(); err != nil {
			return nil, err
		}
		if c.Adapter == nil {
			return nil, fmt.Errorf("chain %s: adapter is required", c.Config.Name)
		}
		if _, dup := s.chains[c.Config.Name]; dup {
			return nil, fmt.Errorf("chain %s configured twice", c.Config.Name)
		}
		mint, err := c.Adapter.NormalizeAddress(c.Config.Mint)
		if err != nil {
			return nil, fmt.Errorf("chain %s: mint: %w", c.Config.Name, err)
		}
		reserve, err := c.Adapter.NormalizeAddress(c.Config.ReserveAddress)
		if err != nil {
			return nil, fmt.Errorf("chain %s: reserve address: %w", c.Config.Name, err)
		}
		c.Config.Mint = mint
		c.Config.ReserveAddress = reserve
		s.chains[c.Config.Name] = c
	}
	return s, nil
}

func (s *Service) chain(name string) (Chain, error) {
	c, ok := s.chains[name]
	if !ok {
		return Chain{}, newError(CodeUnsupportedChain, fmt.Sprintf("chain %q is not bridged", name))
	}
	return c, nil
}

// chainLabel is the metric label of a requested chain name. Names that are
// not configured share one label so callers cannot mint new series.
func (s *Service) chainLabel(name string) string {
	if _, ok := s.chains[name]; ok {
		return name
	}
	return "unsupported"
}

// Chains returns the names of the configured chains, sorted.
func (s *Service) Chains() []string {
	names := make([]string, 0, len(s.chains))
	for name := range s.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BridgeInfo returns the public configuration of a chain.
func (s *Service) BridgeInfo(name string) (ChainConfig, error) {
	c, err := s.chain(name)
	if err != nil {
		return ChainConfig{}, err
	}
	return c.Config, nil
}

// reject logs a rejected request at the level its code deserves.
func reject(log *zap.Logger, err *Error, fields ...zap.Field) *Error {
	fields = append(fields, zap.String("code", string(err.Code)))
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	switch err.Code {
	case CodeIntegrityViolation:
		log.Error(err.Message, fields...)
	case CodeInternal:
		log.Warn(err.Message, fields...)
	default:
		log.Info(err.Message, fields...)
	}
	return err
}

func internal(message string, err error) *Error {
	return wrapError(CodeInternal, message, err)
}

func clampLimit(limit int) (int32, error) {
	switch {
	case limit < 0:
		return 0, newError(CodeInvalidRequest, "limit must not be negative")
	case limit == 0:
		return DefaultHistoryLimit, nil
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit, nil
	}
	return int32(limit), nil
}
