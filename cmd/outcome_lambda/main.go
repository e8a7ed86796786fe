package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/bootstrap"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/config"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/scheduler"
)

// outcomeHandler applies signer outcome reports delivered over SQS.
type outcomeHandler struct {
	withdrawals bridge.WithdrawalManager
	log         *zap.Logger
}

// HandleRequest reports every message whose outcome could not be applied
// yet as a batch item failure so SQS redelivers only those. Reports the
// bridge rejects permanently are acknowledged and logged.
func (h *outcomeHandler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		log := h.log.With(zap.String("message_id", message.MessageId))

		var report scheduler.OutcomeReport
		if err := json.Unmarshal([]byte(message.Body), &report); err != nil {
			log.Error("failed to unmarshal outcome report", zap.Error(err))
			continue
		}
		log = log.With(zap.String("withdrawal_id", report.WithdrawalID), zap.String("status", report.Status))

		_, err := h.withdrawals.ReportOutcome(ctx, report.WithdrawalID, bridge.Outcome{
			Status:      models.WithdrawalStatus(report.Status),
			TxSignature: report.TxSignature,
			Note:        report.Note,
		})
		if err == nil {
			log.Info("outcome applied")
			continue
		}

		switch code := bridge.CodeOf(err); {
		case bridge.IsRetryable(err), code == bridge.CodeInternal, code == bridge.CodeIntegrityViolation:
			// Redelivery ends in the dead-letter queue if the failure persists.
			log.Error("failed to apply outcome", zap.String("code", string(code)), zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		default:
			log.Warn("outcome rejected", zap.String("code", string(code)), zap.Error(err))
		}
	}
	return resp, nil
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	app, err := bootstrap.New(ctx, cfg, "bridge-outcome")
	if err != nil {
		log.Fatalf("unable to initialise bridge, %v", err)
	}

	h := &outcomeHandler{withdrawals: app.Service, log: app.Log}
	lambda.Start(h.HandleRequest)
}
