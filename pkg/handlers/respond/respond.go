// Package respond writes JSON responses and maps bridge errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/mapping"
)

// MaxBodyBytes caps the request bodies Decode reads.
const MaxBodyBytes = 64 << 10

var validate = validator.New()

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Status maps a bridge error code to its HTTP status.
func Status(code bridge.Code) int {
	switch code {
	case bridge.CodeInvalidRequest, bridge.CodeAmountOutOfRange:
		return http.StatusBadRequest
	case bridge.CodeOwnershipMismatch:
		return http.StatusForbidden
	case bridge.CodeUnsupportedChain, bridge.CodeNotFound:
		return http.StatusNotFound
	case bridge.CodeDuplicateDeposit, bridge.CodeInvalidTransition:
		return http.StatusConflict
	case bridge.CodeWrongAsset, bridge.CodeWrongDestination, bridge.CodeTransactionFailed, bridge.CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case bridge.CodeWithdrawalCooldown:
		return http.StatusTooManyRequests
	case bridge.CodeChainNotFound, bridge.CodeChainUnavailable, bridge.CodeConflict:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes err as an api.Error body.
func Error(w http.ResponseWriter, err error) {
	body := mapping.ToApiError(err)
	if bridge.IsRetryable(err) {
		w.Header().Set("Retry-After", "5")
	}
	JSON(w, Status(bridge.Code(body.Code)), body)
}

// BadRequest writes an InvalidRequest error.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, &api.Error{Code: string(bridge.CodeInvalidRequest), Message: message})
}

// CodeForbidden is returned for operator operations called without the
// operator credential.
const CodeForbidden = "Forbidden"

// Forbidden writes a Forbidden error.
func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, &api.Error{Code: CodeForbidden, Message: message})
}

// ParamError is the ErrorHandlerFunc for parameters the router fails to bind.
func ParamError(w http.ResponseWriter, _ *http.Request, err error) {
	BadRequest(w, err.Error())
}

// Decode reads a JSON body of at most MaxBodyBytes into v and validates its
// struct tags.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid request body: field %s failed on %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// Decimals returns the decimals of chain, or 0 when the chain is no longer
// configured.
func Decimals(info bridge.InfoReader, chain string) int32 {
	cfg, err := info.BridgeInfo(chain)
	if err != nil {
		return 0
	}
	return cfg.Decimals
}
