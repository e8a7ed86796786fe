package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/chris/custodial-bridge/pkg/bridge/mocks"
)

func TestHandleRequest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("RescheduleStale", mock.Anything, 10*time.Minute, int32(batchSize)).Return(3, nil)

		r := &reconciler{bridge: mockBridge, staleAfter: 10 * time.Minute, log: zaptest.NewLogger(t)}

		assert.NoError(t, r.HandleRequest(context.Background()))
	})

	t.Run("Partial Failure", func(t *testing.T) {
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("RescheduleStale", mock.Anything, time.Minute, int32(batchSize)).Return(1, errors.New("queue unavailable"))

		r := &reconciler{bridge: mockBridge, staleAfter: time.Minute, log: zaptest.NewLogger(t)}

		assert.Error(t, r.HandleRequest(context.Background()))
	})
}
