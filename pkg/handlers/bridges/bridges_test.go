package bridges_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/bridge/mocks"
	"github.com/chris/custodial-bridge/pkg/handlers/bridges"
	"github.com/chris/custodial-bridge/pkg/models"
)

func TestGetBridge(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("BridgeInfo", "base").Return(bridge.ChainConfig{
			Name:               "base",
			Kind:               "evm",
			Mint:               "0x5683c10596aaa09ad7f4ef13cab94b9b74a669c6",
			ReserveAddress:     "0x000000000000000000000000000000000000dead",
			Decimals:           6,
			MinWithdrawal:      1_000_000,
			MaxWithdrawal:      100_000_000_000,
			WithdrawalFee:      50_000,
			MinDeposit:         1_000_000,
			WithdrawalCooldown: 10 * time.Second,
			Confirmations:      12,
		}, nil)

		h := bridges.NewBridgesHandler(mockBridge)
		req := httptest.NewRequest(http.MethodGet, "/bridges/base", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetBridge(rr, req, "base")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.BridgeInfo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "evm", got.Kind)
		assert.Equal(t, "0.05", got.WithdrawalFee)
		assert.Equal(t, "1", got.MinDeposit)
		assert.Equal(t, int64(10), got.WithdrawalCooldownSeconds)
	})

	t.Run("Unsupported Chain", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("BridgeInfo", "dogecoin").
			Return(bridge.ChainConfig{}, &bridge.Error{Code: bridge.CodeUnsupportedChain, Message: `chain "dogecoin" is not bridged`})

		h := bridges.NewBridgesHandler(mockBridge)
		req := httptest.NewRequest(http.MethodGet, "/bridges/dogecoin", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetBridge(rr, req, "dogecoin")

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "UnsupportedChain")
	})
}

func TestGetBridgeStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("BridgeStats", mock.Anything, "solana").Return(&models.BridgeStats{
			Chain:             "solana",
			DepositCount:      3,
			DepositedTotal:    2_500_000,
			WithdrawalCount:   2,
			WithdrawnTotal:    1_000_000,
			QueuedWithdrawals: 1,
			SentWithdrawals:   1,
		}, nil)
		mockBridge.On("BridgeInfo", "solana").Return(bridge.ChainConfig{Name: "solana", Decimals: 6}, nil)

		h := bridges.NewBridgesHandler(mockBridge)
		req := httptest.NewRequest(http.MethodGet, "/bridges/solana/stats", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetBridgeStats(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.BridgeStats
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.DepositCount)
		assert.Equal(t, "2.5", got.DepositedDecimal)
		assert.Equal(t, "1", got.WithdrawnDecimal)
		assert.Equal(t, int64(1), got.QueuedWithdrawals)
	})

	t.Run("Unsupported Chain", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("BridgeStats", mock.Anything, "dogecoin").
			Return(nil, &bridge.Error{Code: bridge.CodeUnsupportedChain, Message: `chain "dogecoin" is not bridged`})

		h := bridges.NewBridgesHandler(mockBridge)
		req := httptest.NewRequest(http.MethodGet, "/bridges/dogecoin/stats", nil)
		rr := httptest.NewRecorder()

		// Act
		h.GetBridgeStats(rr, req, "dogecoin")

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "UnsupportedChain")
	})
}
