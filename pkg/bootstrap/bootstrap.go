// Package bootstrap builds the bridge service and its dependencies from
// configuration. It is shared by the HTTP server and the Lambda entry points.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/chain"
	"github.com/chris/custodial-bridge/pkg/chain/evm"
	"github.com/chris/custodial-bridge/pkg/chain/solana"
	"github.com/chris/custodial-bridge/pkg/config"
	"github.com/chris/custodial-bridge/pkg/logging"
	"github.com/chris/custodial-bridge/pkg/scheduler"
	"github.com/chris/custodial-bridge/pkg/storage"
	dydbstore "github.com/chris/custodial-bridge/pkg/storage/dynamodb"
	"github.com/chris/custodial-bridge/pkg/storage/memory"
	"github.com/chris/custodial-bridge/pkg/storage/postgres"
)

// App holds the wired dependencies of one process.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Store   storage.Storage
	Service *bridge.Service

	aws     *aws.Config
	closers []func() error
}

// New wires the store, signer hand-off and chain adapters described by cfg.
func New(ctx context.Context, cfg *config.Config, service string) (*App, error) {
	log, err := logging.New(service, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log}

	if a.Store, err = a.buildStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	sched, err := a.buildScheduler(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	chains, err := a.buildChains(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.Service, err = bridge.NewService(a.Store, sched, log, chains...); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("bridge initialised",
		zap.String("storage", cfg.Storage.Backend),
		zap.Strings("chains", a.Service.Chains()),
		zap.Bool("signer_queue", cfg.Signer.QueueURL != ""))
	return a, nil
}

// Close releases database and RPC connections and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	_ = a.Log.Sync()
	return errors.Join(errs...)
}

func (a *App) awsConfig(ctx context.Context) (aws.Config, error) {
	if a.aws != nil {
		return *a.aws, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	a.aws = &cfg
	return cfg, nil
}

func (a *App) buildStore(ctx context.Context) (storage.Storage, error) {
	sc := a.Config.Storage
	switch sc.Backend {
	case "dynamodb":
		awsCfg, err := a.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		return dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
			Accounts:    sc.DynamoDB.AccountsTable,
			Wallets:     sc.DynamoDB.WalletsTable,
			Deposits:    sc.DynamoDB.DepositsTable,
			Withdrawals: sc.DynamoDB.WithdrawalsTable,
			Audit:       sc.DynamoDB.AuditTable,
		}), nil
	case "postgres":
		store, err := postgres.Open(ctx, sc.Postgres.DSN, sc.Postgres.Migrate)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case "memory":
		a.Log.Warn("using the in-memory ledger store; balances are lost on restart")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
}

func (a *App) buildScheduler(ctx context.Context) (scheduler.Scheduler, error) {
	if a.Config.Signer.QueueURL == "" {
		a.Log.Info("no signer queue configured; the signer pulls queued withdrawals")
		return scheduler.NoOp{}, nil
	}
	awsCfg, err := a.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), a.Config.Signer.QueueURL), nil
}

func (a *App) buildChains(ctx context.Context) ([]bridge.Chain, error) {
	chains := make([]bridge.Chain, 0, len(a.Config.Chains))
	for _, cc := range a.Config.Chains {
		bc, err := cc.Bridge()
		if err != nil {
			return nil, err
		}

		var adapter chain.Adapter
		switch cc.Kind {
		case config.KindSolana:
			client := solana.NewClient(cc.RPCURL, cc.RateLimitPerSecond, int(cc.RateLimitPerSecond))
			adapter, err = solana.New(cc.Name, client, bc.Mint, bc.ReserveAddress)
		case config.KindEVM:
			if bc.Confirmations == 0 {
				bc.Confirmations = evm.DefaultConfirmations
			}
			client, derr := evm.Dial(ctx, cc.RPCURL)
			if derr != nil {
				return nil, fmt.Errorf("chain %s: %w", cc.Name, derr)
			}
			a.closers = append(a.closers, func() error { client.Close(); return nil })
			adapter, err = evm.New(cc.Name, client, bc.Mint, bc.ReserveAddress, bc.Confirmations)
		default:
			err = fmt.Errorf("unknown chain kind %q", cc.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("chain %s: %w", cc.Name, err)
		}

		guarded := chain.NewGuarded(adapter, chain.GuardOptions{
			Name:                cc.Name,
			Timeout:             cc.QueryTimeout,
			Retries:             cc.QueryRetries,
			ConsecutiveFailures: cc.BreakerFailures,
		}, a.Log.With(zap.String("chain", cc.Name)))
		chains = append(chains, bridge.Chain{Config: bc, Adapter: guarded})
	}
	return chains, nil
}
