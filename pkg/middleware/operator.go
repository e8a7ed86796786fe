package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
)

// OperatorHeader carries the credential of the signer and operator tooling.
const OperatorHeader = "X-Operator-Key"

type operatorKey struct{}

// Operator marks requests presenting apiKey in OperatorHeader as operator
// requests. With an empty apiKey no request is ever marked.
func Operator(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey != "" {
				got := r.Header.Get(OperatorHeader)
				if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) == 1 {
					r = r.WithContext(WithOperator(r.Context()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithOperator returns a copy of ctx marked as an operator request.
func WithOperator(ctx context.Context) context.Context {
	return context.WithValue(ctx, operatorKey{}, true)
}

// IsOperator reports whether the request presented the operator credential.
func IsOperator(ctx context.Context) bool {
	ok, _ := ctx.Value(operatorKey{}).(bool)
	return ok
}
