package bridge

import (
	"errors"
	"fmt"
)

// Code is the stable machine-readable identifier of a bridge error.
type Code string

const (
	// Retryable: the same request may succeed later.
	CodeChainNotFound    Code = "ChainNotFound"
	CodeChainUnavailable Code = "ChainUnavailable"
	CodeConflict         Code = "Conflict"

	// Permanent: the request will never succeed as submitted.
	CodeWrongAsset          Code = "WrongAsset"
	CodeWrongDestination    Code = "WrongDestination"
	CodeOwnershipMismatch   Code = "OwnershipMismatch"
	CodeDuplicateDeposit    Code = "DuplicateDeposit"
	CodeTransactionFailed   Code = "TransactionFailed"
	CodeAmountOutOfRange    Code = "AmountOutOfRange"
	CodeInsufficientBalance Code = "InsufficientBalance"
	CodeWithdrawalCooldown  Code = "WithdrawalCooldown"
	CodeInvalidTransition   Code = "InvalidTransition"
	CodeInvalidRequest      Code = "InvalidRequest"
	CodeUnsupportedChain    Code = "UnsupportedChain"
	CodeNotFound            Code = "NotFound"

	// Fatal: an invariant was observed broken. Processing of the record halts.
	CodeIntegrityViolation Code = "IntegrityViolation"

	// Internal covers store and queue failures that carry no verdict on the request.
	CodeInternal Code = "Internal"
)

// Retryable reports whether a caller may resubmit the same request.
func (c Code) Retryable() bool {
	return c == CodeChainNotFound || c == CodeChainUnavailable || c == CodeConflict
}

// Error is returned by every Service operation.
type Error struct {
	Code      Code
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Retryable: code.Retryable()}
}

func wrapError(code Code, message string, err error) *Error {
	e := newError(code, message)
	e.Err = err
	return e
}

// CodeOf returns the code of err, or CodeInternal when err is not a bridge error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsRetryable reports whether err allows resubmitting the same request.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
