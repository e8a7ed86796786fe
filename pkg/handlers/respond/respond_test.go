package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
)

func TestStatus(t *testing.T) {
	tests := map[bridge.Code]int{
		bridge.CodeChainNotFound:       http.StatusServiceUnavailable,
		bridge.CodeChainUnavailable:    http.StatusServiceUnavailable,
		bridge.CodeConflict:            http.StatusServiceUnavailable,
		bridge.CodeWrongAsset:          http.StatusUnprocessableEntity,
		bridge.CodeWrongDestination:    http.StatusUnprocessableEntity,
		bridge.CodeOwnershipMismatch:   http.StatusForbidden,
		bridge.CodeDuplicateDeposit:    http.StatusConflict,
		bridge.CodeTransactionFailed:   http.StatusUnprocessableEntity,
		bridge.CodeAmountOutOfRange:    http.StatusBadRequest,
		bridge.CodeInsufficientBalance: http.StatusUnprocessableEntity,
		bridge.CodeWithdrawalCooldown:  http.StatusTooManyRequests,
		bridge.CodeInvalidTransition:   http.StatusConflict,
		bridge.CodeInvalidRequest:      http.StatusBadRequest,
		bridge.CodeUnsupportedChain:    http.StatusNotFound,
		bridge.CodeNotFound:            http.StatusNotFound,
		bridge.CodeIntegrityViolation:  http.StatusInternalServerError,
		bridge.CodeInternal:            http.StatusInternalServerError,
	}
	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			got := respond.Status(code)
			assert.Equal(t, want, got)
			if code.Retryable() {
				assert.Equal(t, http.StatusServiceUnavailable, got)
			} else {
				assert.NotEqual(t, http.StatusServiceUnavailable, got)
			}
		})
	}
}

func TestError(t *testing.T) {
	t.Run("Retryable", func(t *testing.T) {
		rr := httptest.NewRecorder()

		respond.Error(rr, &bridge.Error{Code: bridge.CodeChainNotFound, Message: "not finalized", Retryable: true})

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "5", rr.Header().Get("Retry-After"))
		var body api.Error
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, api.Error{Code: "ChainNotFound", Message: "not finalized", Retryable: true}, body)
	})

	t.Run("Unclassified", func(t *testing.T) {
		rr := httptest.NewRecorder()

		respond.Error(rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, rr.Header().Get("Retry-After"))
	})
}

func TestDecode(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"destination_address":"abc","amount":5}`))

		var body api.WithdrawalRequest
		require.NoError(t, respond.Decode(httptest.NewRecorder(), req, &body))

		assert.Equal(t, int64(5), body.Amount)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

		var body api.WithdrawalRequest
		assert.Error(t, respond.Decode(httptest.NewRecorder(), req, &body))
	})

	t.Run("FailsValidation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"destination_address":"abc","amount":0}`))

		var body api.WithdrawalRequest
		err := respond.Decode(httptest.NewRecorder(), req, &body)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Amount")
	})

	t.Run("OversizedBody", func(t *testing.T) {
		padding := strings.Repeat(" ", respond.MaxBodyBytes)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(padding+`{"destination_address":"abc","amount":5}`))

		var body api.WithdrawalRequest
		err := respond.Decode(httptest.NewRecorder(), req, &body)

		var tooLarge *http.MaxBytesError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, int64(respond.MaxBodyBytes), tooLarge.Limit)
	})

	t.Run("UnknownOutcomeStatus", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"queued"}`))

		var body api.OutcomeRequest
		assert.Error(t, respond.Decode(httptest.NewRecorder(), req, &body))
	})
}
