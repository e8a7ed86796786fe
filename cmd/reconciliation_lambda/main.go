package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/bootstrap"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/config"
)

// batchSize bounds the withdrawals re-handed per invocation.
const batchSize = 100

type reconciler struct {
	bridge     bridge.Reconciler
	staleAfter time.Duration
	log        *zap.Logger
}

// HandleRequest is triggered by an EventBridge Schedule.
func (r *reconciler) HandleRequest(ctx context.Context) error {
	r.log.Info("starting reconciliation of stale withdrawals", zap.Duration("stale_after", r.staleAfter))

	n, err := r.bridge.RescheduleStale(ctx, r.staleAfter, batchSize)
	if err != nil {
		// Withdrawals that were not re-handed stay queued for the next run.
		r.log.Error("reconciliation finished with failures", zap.Int("rescheduled", n), zap.Error(err))
		return err
	}

	r.log.Info("reconciliation finished", zap.Int("rescheduled", n))
	return nil
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	if cfg.Signer.QueueURL == "" {
		log.Fatal("signer.queue_url must be set for reconciliation")
	}
	app, err := bootstrap.New(ctx, cfg, "bridge-reconciliation")
	if err != nil {
		log.Fatalf("unable to initialise bridge, %v", err)
	}

	r := &reconciler{bridge: app.Service, staleAfter: cfg.Signer.StaleAfter, log: app.Log}
	lambda.Start(r.HandleRequest)
}
