package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/bridge/mocks"
	"github.com/chris/custodial-bridge/pkg/models"
)

func TestHandleRequest(t *testing.T) {
	mockBridge := mocks.NewBridge(t)
	mockBridge.On("ReportOutcome", mock.Anything, "w-sent", bridge.Outcome{Status: models.SENT, TxSignature: "sig"}).
		Return(&models.Withdrawal{WithdrawalID: "w-sent", Status: models.SENT}, nil)
	mockBridge.On("ReportOutcome", mock.Anything, "w-conflict", bridge.Outcome{Status: models.FAILED, Note: "gave up"}).
		Return(nil, &bridge.Error{Code: bridge.CodeInvalidTransition, Message: "withdrawal is already sent"})
	mockBridge.On("ReportOutcome", mock.Anything, "w-down", bridge.Outcome{Status: models.FAILED}).
		Return(nil, &bridge.Error{Code: bridge.CodeInternal, Message: "failed to fail withdrawal"})

	h := &outcomeHandler{withdrawals: mockBridge, log: zaptest.NewLogger(t)}

	resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "m1", Body: `{"withdrawal_id":"w-sent","status":"sent","tx_signature":"sig"}`},
		{MessageId: "m2", Body: `{"withdrawal_id":"w-conflict","status":"failed","note":"gave up"}`},
		{MessageId: "m3", Body: `{"withdrawal_id":"w-down","status":"failed"}`},
		{MessageId: "m4", Body: `not json`},
	}})

	require.NoError(t, err)
	assert.Equal(t, []events.SQSBatchItemFailure{{ItemIdentifier: "m3"}}, resp.BatchItemFailures)
}
