package deposits_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/bridge/mocks"
	"github.com/chris/custodial-bridge/pkg/handlers/deposits"
	"github.com/chris/custodial-bridge/pkg/middleware"
	"github.com/chris/custodial-bridge/pkg/models"
)

func newRequest(t *testing.T, accountID string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/bridges/solana/deposits", bytes.NewReader(raw))
	if accountID != "" {
		req = req.WithContext(middleware.WithAccountID(req.Context(), accountID))
	}
	return req
}

func TestCreateDeposit(t *testing.T) {
	deposit := &models.Deposit{
		DepositID:     "0190f5c2-0000-7000-8000-000000000001",
		TxSignature:   "sig-1",
		Chain:         "solana",
		AccountID:     "acct-1",
		Amount:        100_000_000,
		Mint:          "mint",
		SenderAddress: "wallet-1",
		Slot:          42,
		BlockTime:     time.Now().UTC(),
		CreditedAt:    time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("VerifyAndCredit", mock.Anything, "solana", "acct-1", "sig-1").Return(deposit, nil)
		mockBridge.On("BridgeInfo", "solana").Return(bridge.ChainConfig{Name: "solana", Decimals: 6}, nil)

		h := deposits.NewDepositsHandler(mockBridge)
		req := newRequest(t, "acct-1", api.DepositRequest{TxSignature: "sig-1"})
		rr := httptest.NewRecorder()

		// Act
		h.CreateDeposit(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Deposit
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, deposit.DepositID, got.DepositId)
		assert.Equal(t, int64(100_000_000), got.Amount)
		assert.Equal(t, "100", got.AmountDecimal)
		assert.Equal(t, int64(42), got.Slot)
	})

	t.Run("Claimed By Another Account", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("VerifyAndCredit", mock.Anything, "solana", "acct-2", "sig-1").
			Return(nil, &bridge.Error{Code: bridge.CodeDuplicateDeposit, Message: "transaction was already credited to another account"})

		h := deposits.NewDepositsHandler(mockBridge)
		req := newRequest(t, "acct-2", api.DepositRequest{TxSignature: "sig-1"})
		rr := httptest.NewRecorder()

		// Act
		h.CreateDeposit(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		var got api.Error
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "DuplicateDeposit", got.Code)
		assert.False(t, got.Retryable)
	})

	t.Run("Not Finalized Yet", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)
		mockBridge.On("VerifyAndCredit", mock.Anything, "solana", "acct-1", "sig-1").
			Return(nil, &bridge.Error{Code: bridge.CodeChainNotFound, Message: "transaction not found or not finalized yet", Retryable: true})

		h := deposits.NewDepositsHandler(mockBridge)
		req := newRequest(t, "acct-1", api.DepositRequest{TxSignature: "sig-1"})
		rr := httptest.NewRecorder()

		// Act
		h.CreateDeposit(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), `"retryable":true`)
	})

	t.Run("Missing Signature", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)

		h := deposits.NewDepositsHandler(mockBridge)
		req := newRequest(t, "acct-1", map[string]string{})
		rr := httptest.NewRecorder()

		// Act
		h.CreateDeposit(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "InvalidRequest")
	})

	t.Run("Malformed Body", func(t *testing.T) {
		// Arrange
		mockBridge := mocks.NewBridge(t)

		h := deposits.NewDepositsHandler(mockBridge)
		req := httptest.NewRequest(http.MethodPost, "/bridges/solana/deposits", strings.NewReader("{"))
		rr := httptest.NewRecorder()

		// Act
		h.CreateDeposit(rr, req, "solana")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
